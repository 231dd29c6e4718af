package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity record behind a verified session token. The reset
// ticket lives directly on the record: a sha256 digest of the emailed token
// plus its expiry, both cleared on consumption.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	PasswordHashed string
	Role           string
	AvatarURL      string

	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
