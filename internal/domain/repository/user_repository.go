package repository

import (
	"context"
	"errors"

	"github.com/docuchat/auth-service/internal/domain/entity"
)

var (
	// ErrNotFound means the lookup matched no document. Absence is a
	// normal outcome, not an infrastructure failure.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Insert when the unique index on
	// email rejects the document.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnavailable wraps transient store/connectivity failures.
	ErrUnavailable = errors.New("user store unavailable")
)

// UserRepository defines the interface for user persistence.
// FindByEmail must reflect the most recent prior Insert (read-your-writes).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}
