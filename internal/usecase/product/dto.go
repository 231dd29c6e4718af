package product

import (
	"time"

	"github.com/google/uuid"

	domainProduct "storefront/internal/domain/product"
)

type CreateProductRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=255"`
	Description string         `json:"description" validate:"required"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	Category    string         `json:"category" validate:"required"`
	Seller      string         `json:"seller" validate:"required"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Images      []ImageRequest `json:"images" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description" validate:"omitempty"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty"`
	Seller      *string  `json:"seller" validate:"omitempty"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

type ImageRequest struct {
	PublicID string `json:"public_id" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    float64   `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" validate:"max=2000"`
}

type ProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        float64          `json:"price"`
	Category     string           `json:"category"`
	Seller       string           `json:"seller"`
	Stock        int              `json:"stock"`
	Ratings      float64          `json:"ratings"`
	NumOfReviews int              `json:"num_of_reviews"`
	Images       []ImageResponse  `json:"images"`
	Reviews      []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type ImageResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type ReviewResponse struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"name"`
	Rating   float64   `json:"rating"`
	Comment  string    `json:"comment"`
}

// ListResponse mirrors the storefront listing contract: productCount is the
// unfiltered catalog size, filteredProductsCount the size after keyword and
// field filters.
type ListResponse struct {
	ProductCount          int64              `json:"productCount"`
	FilteredProductsCount int64              `json:"filteredProductsCount"`
	ResPerPage            int                `json:"resPerPage"`
	Products              []*ProductResponse `json:"products"`
}

func ToProductResponse(p *domainProduct.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	resp := &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		Seller:       p.Seller,
		Stock:        p.Stock,
		Ratings:      p.Ratings,
		NumOfReviews: p.NumOfReviews,
		CreatedAt:    p.CreatedAt,
	}

	for _, img := range p.Images {
		resp.Images = append(resp.Images, ImageResponse{
			PublicID: img.PublicID,
			URL:      img.URL,
		})
	}
	for _, r := range p.Reviews {
		resp.Reviews = append(resp.Reviews, ToReviewResponse(r))
	}

	return resp
}

func ToReviewResponse(r domainProduct.Review) ReviewResponse {
	return ReviewResponse{
		ID:       r.ID,
		UserID:   r.UserID,
		UserName: r.UserName,
		Rating:   r.Rating,
		Comment:  r.Comment,
	}
}
