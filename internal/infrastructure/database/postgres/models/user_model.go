package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User. The reset ticket is
// stored inline: only the sha256 digest of the emailed token, never the
// token itself.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	Role           string    `gorm:"type:varchar(50);not null;default:'user'"`
	AvatarURL      string    `gorm:"type:text"`

	ResetPasswordToken   *string    `gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
