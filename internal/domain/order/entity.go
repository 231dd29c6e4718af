package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ShippingInfo ShippingInfo
	Items        []Item

	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64

	// Payment capture happens outside this system; only the gateway's
	// reference and status are recorded.
	PaymentID     string
	PaymentStatus string
	PaidAt        *time.Time

	Status      Status
	DeliveredAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShippingInfo struct {
	Address    string
	City       string
	PostalCode string
	Country    string
	PhoneNo    string
}

type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
	Price     float64
	ImageURL  string
}
