package order

import (
	"time"

	"github.com/google/uuid"

	domainOrder "storefront/internal/domain/order"
)

type CreateOrderRequest struct {
	ShippingInfo  ShippingInfoRequest `json:"shipping_info" validate:"required"`
	Items         []ItemRequest       `json:"order_items" validate:"required,min=1,dive"`
	ItemsPrice    float64             `json:"items_price" validate:"gte=0"`
	TaxPrice      float64             `json:"tax_price" validate:"gte=0"`
	ShippingPrice float64             `json:"shipping_price" validate:"gte=0"`
	TotalPrice    float64             `json:"total_price" validate:"gt=0"`
	PaymentID     string              `json:"payment_id"`
	PaymentStatus string              `json:"payment_status"`
}

type ShippingInfoRequest struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PhoneNo    string `json:"phone_no" validate:"required"`
}

type ItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"required,gt=0"`
	ImageURL  string    `json:"image_url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	ShippingInfo  ShippingInfoRequest `json:"shipping_info"`
	Items         []ItemResponse     `json:"order_items"`
	ItemsPrice    float64            `json:"items_price"`
	TaxPrice      float64            `json:"tax_price"`
	ShippingPrice float64            `json:"shipping_price"`
	TotalPrice    float64            `json:"total_price"`
	PaymentStatus string             `json:"payment_status"`
	PaidAt        *time.Time         `json:"paid_at"`
	Status        string             `json:"order_status"`
	DeliveredAt   *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type ItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url"`
}

// AdminListResponse mirrors the admin dashboard contract: all orders plus
// the running revenue total.
type AdminListResponse struct {
	TotalAmount float64          `json:"total_amount"`
	Orders      []*OrderResponse `json:"orders"`
}

func ToOrderResponse(o *domainOrder.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		ShippingInfo: ShippingInfoRequest{
			Address:    o.ShippingInfo.Address,
			City:       o.ShippingInfo.City,
			PostalCode: o.ShippingInfo.PostalCode,
			Country:    o.ShippingInfo.Country,
			PhoneNo:    o.ShippingInfo.PhoneNo,
		},
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		PaymentStatus: o.PaymentStatus,
		PaidAt:        o.PaidAt,
		Status:        string(o.Status),
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
		})
	}

	return resp
}
