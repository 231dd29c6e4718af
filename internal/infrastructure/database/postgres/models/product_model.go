package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel represents the database model for Product.
type ProductModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	Description  string    `gorm:"type:text;not null"`
	Price        float64   `gorm:"type:numeric(10,2);not null;index"`
	Category     string    `gorm:"type:varchar(100);not null;index"`
	Seller       string    `gorm:"type:varchar(255);not null"`
	Stock        int       `gorm:"not null;default:0"`
	Ratings      float64   `gorm:"not null;default:0"`
	NumOfReviews int       `gorm:"not null;default:0"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index"`

	Images  []ProductImageModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews []ReviewModel       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	PublicID  string    `gorm:"type:varchar(255);not null"`
	URL       string    `gorm:"type:text;not null"`
}

func (ProductImageModel) TableName() string {
	return "product_images"
}

// ReviewModel holds one review per (product, user); the unique index backs
// the upsert semantics of repeated reviews.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserName  string    `gorm:"type:varchar(255);not null"`
	Rating    float64   `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
