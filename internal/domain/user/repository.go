package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence operations behind the auth gate and
// the user account endpoints.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, userID uuid.UUID) error

	// SetResetToken stores the hashed reset ticket and its expiry on the
	// user record; ClearResetToken removes it without consuming it (used to
	// roll back when the reset email cannot be sent).
	SetResetToken(ctx context.Context, userID uuid.UUID, hashedToken string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error

	// ConsumeResetToken resolves an unexpired ticket by its hash and clears
	// it in the same operation, so a ticket can be redeemed at most once.
	// Returns ErrResetTokenInvalid for an unknown, expired or already
	// consumed ticket.
	ConsumeResetToken(ctx context.Context, hashedToken string, now time.Time) (*User, error)
}
