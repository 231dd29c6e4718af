package order

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	GetAll(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, order *Order) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}
