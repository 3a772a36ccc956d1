package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/docuchat/auth-service/internal/domain/entity"
	repo "github.com/docuchat/auth-service/internal/domain/repository"
	"github.com/docuchat/auth-service/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password. Login never distinguishes the two, so an attacker
	// cannot enumerate registered accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStoreUnavailable   = errors.New("user store unavailable")
	ErrUserNotFound       = errors.New("user not found")
)

type Service struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	return &Service{Repo: r, JWT: jwt, Logger: logger}
}

// TokenPair is the credential set issued on registration and login.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
	TokenType          string
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     entity.Role
}

// Register creates a user and issues a token pair. Uniqueness is
// checked twice: a pre-check lookup, and the store's unique index on
// the insert itself. Two concurrent registrations of the same email
// both pass the pre-check; the index rejects the loser and that
// rejection maps to the same ErrEmailTaken as the pre-check.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*TokenPair, error) {
	_, err := s.Repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, s.storeFailure("register lookup", in.Email, err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("password hashing failed")
		}
		return nil, ErrStoreUnavailable
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}

	now := time.Now().UTC()
	u := &entity.User{
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: hash,
		Role:           role,
		Disabled:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	u, err = s.Repo.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storeFailure("register insert", in.Email, err)
	}

	return s.issueTokens(u)
}

// Login validates credentials and issues a token pair. Each call is a
// single decision; there are no retries or lockout counters.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, s.storeFailure("login lookup", email, err)
	}
	if !helpers.CheckPassword(u.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(u)
}

// GetProfile returns the user behind a verified access token subject.
func (s *Service) GetProfile(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.storeFailure("profile lookup", email, err)
	}
	return u, nil
}

// ListUsers backs the admin dashboard user listing.
func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, s.storeFailure("user listing", "", err)
	}
	return users, nil
}

// issueTokens mints the access token {sub, role, exp} and the refresh
// token {sub, exp}. The refresh token deliberately omits role.
func (s *Service) issueTokens(u *entity.User) (*TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.Email, u.Role.String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("generate access token failed")
		}
		return nil, ErrStoreUnavailable
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("generate refresh token failed")
		}
		return nil, ErrStoreUnavailable
	}
	return &TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
		TokenType:          "bearer",
	}, nil
}

// storeFailure logs the underlying store error and collapses it into
// the one transient outcome the caller is allowed to see.
func (s *Service) storeFailure(op, email string, err error) error {
	if s.Logger != nil {
		fields := logrus.Fields{}
		if email != "" {
			fields["email"] = email
		}
		s.Logger.WithError(err).WithFields(fields).Error(op + " failed")
	}
	return ErrStoreUnavailable
}
