package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel represents the database model for Order.
type OrderModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	ShippingAddress    string `gorm:"type:varchar(500);not null"`
	ShippingCity       string `gorm:"type:varchar(100);not null"`
	ShippingPostalCode string `gorm:"type:varchar(20);not null"`
	ShippingCountry    string `gorm:"type:varchar(100);not null"`
	ShippingPhoneNo    string `gorm:"type:varchar(20);not null"`

	ItemsPrice    float64 `gorm:"type:numeric(10,2);not null"`
	TaxPrice      float64 `gorm:"type:numeric(10,2);not null"`
	ShippingPrice float64 `gorm:"type:numeric(10,2);not null"`
	TotalPrice    float64 `gorm:"type:numeric(10,2);not null"`

	PaymentID     string     `gorm:"type:varchar(255)"`
	PaymentStatus string     `gorm:"type:varchar(50)"`
	PaidAt        *time.Time `gorm:"type:timestamp"`

	Status      string     `gorm:"type:varchar(50);not null;default:'Processing';index"`
	DeliveredAt *time.Time `gorm:"type:timestamp"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Quantity  int       `gorm:"not null"`
	Price     float64   `gorm:"type:numeric(10,2);not null"`
	ImageURL  string    `gorm:"type:text"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
