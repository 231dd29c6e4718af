package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUnauthenticated = errors.New("please login to access this resource")
	ErrTokenInvalid    = errors.New("invalid authentication token, please login again")
	ErrTokenExpired    = errors.New("authentication token has expired, please login again")
	ErrForbidden       = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidUserRole   = errors.New("invalid user role")

	// ErrResetTokenInvalid covers both a wrong token and an expired one so
	// the reset endpoint cannot be used as an oracle.
	ErrResetTokenInvalid = errors.New("password reset token is invalid or has expired")

	ErrProductNotFound = errors.New("product not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderDelivered  = errors.New("order has already been delivered")

	ErrInvalidInput     = errors.New("invalid input data")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
