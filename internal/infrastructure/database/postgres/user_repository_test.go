package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	domainUser "storefront/internal/domain/user"
)

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE email = \$1 ORDER BY`).
		WithArgs("nobody@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, domainUser.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryConsumeResetToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE reset_password_token = \$1 AND reset_password_expires > \$2 ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).
			AddRow(userID, "alice@example.com", "Alice"))

	mock.ExpectBegin()
	mock.ExpectExec(`^UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := repo.ConsumeResetToken(context.Background(), "hashed-token", time.Now())
	if err != nil {
		t.Fatalf("ConsumeResetToken returned error: %v", err)
	}
	if user.ID != userID {
		t.Fatalf("expected user %s, got %s", userID, user.ID)
	}
}

func TestUserRepositoryConsumeResetTokenUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE reset_password_token = \$1 AND reset_password_expires > \$2 ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ConsumeResetToken(context.Background(), "hashed-token", time.Now())
	if !errors.Is(err, domainUser.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

// A ticket raced away by a concurrent redemption surfaces as invalid even
// though the lookup succeeded.
func TestUserRepositoryConsumeResetTokenLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`^SELECT \* FROM "users" WHERE reset_password_token = \$1 AND reset_password_expires > \$2 ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(uuid.New(), "alice@example.com"))

	mock.ExpectBegin()
	mock.ExpectExec(`^UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := repo.ConsumeResetToken(context.Background(), "hashed-token", time.Now())
	if !errors.Is(err, domainUser.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
