package order

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyDelivered = errors.New("order has already been delivered")
	ErrInvalidStatus    = errors.New("invalid order status")
)
