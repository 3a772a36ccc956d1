package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/auth-service/internal/domain/entity"
	repo "github.com/docuchat/auth-service/internal/domain/repository"
	"github.com/docuchat/auth-service/pkg/helpers"
)

// fakeUserRepo is an in-memory UserRepository that enforces email
// uniqueness on Insert the way the store's unique index does.
type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User

	findErr   error
	insertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Insert(_ context.Context, u *entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, repo.ErrDuplicateEmail
	}
	u.ID = "65f000000000000000000001"
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func newTestService(r repo.UserRepository) *Service {
	jwt := &helpers.JWTManager{
		Secret:     []byte("test-secret"),
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
	return NewService(r, jwt, nil)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)

	pair, err := s.Register(context.Background(), RegisterInput{
		Email:    "a@x.com",
		FullName: "Alice",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored := f.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.HashedPassword)
	assert.True(t, helpers.CheckPassword(stored.HashedPassword, "secret1"))
	assert.Equal(t, entity.RoleUser, stored.Role, "role defaults to user")
	assert.False(t, stored.Disabled)
	assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	assert.NotEmpty(t, stored.ID)

	claims, err := s.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)

	in := RegisterInput{Email: "a@x.com", FullName: "Alice", Password: "secret1"}
	_, err := s.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_InsertRaceMapsToEmailTaken(t *testing.T) {
	t.Parallel()

	// Simulate losing the check-then-insert race: the lookup sees no
	// user but the unique index rejects the insert.
	f := newFakeUserRepo()
	f.insertErr = repo.ErrDuplicateEmail
	s := newTestService(f)

	_, err := s.Register(context.Background(), RegisterInput{
		Email: "a@x.com", FullName: "Alice", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)
	in := RegisterInput{Email: "race@x.com", FullName: "R", Password: "secret1"}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(context.Background(), in)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, taken int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrEmailTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one registration should succeed")
	assert.Equal(t, 1, taken, "the loser should see the duplicate outcome")
}

func TestRegister_StoreUnavailable(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	f.findErr = repo.ErrUnavailable
	s := newTestService(f)

	_, err := s.Register(context.Background(), RegisterInput{
		Email: "a@x.com", FullName: "Alice", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)
	_, err := s.Register(context.Background(), RegisterInput{
		Email: "a@x.com", FullName: "Alice", Password: "secret1",
	})
	require.NoError(t, err)

	_, errUnknown := s.Login(context.Background(), "nobody@x.com", "secret1")
	_, errWrongPw := s.Login(context.Background(), "a@x.com", "wrongpw")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw, "both failures must be indistinguishable")
}

func TestLogin_AdminRoleInAccessTokenOnly(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)
	_, err := s.Register(context.Background(), RegisterInput{
		Email: "root@x.com", FullName: "Root", Password: "secret1", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	pair, err := s.Login(context.Background(), "root@x.com", "secret1")
	require.NoError(t, err)

	access, err := s.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", access.Subject)
	assert.Equal(t, "admin", access.Role)

	refresh, err := s.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "root@x.com", refresh.Subject)
	assert.Empty(t, refresh.Role, "refresh token must not carry a role")
}

func TestLogin_StoreUnavailable(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	f.findErr = repo.ErrUnavailable
	s := newTestService(f)

	_, err := s.Login(context.Background(), "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	f := newFakeUserRepo()
	s := newTestService(f)
	_, err := s.Register(context.Background(), RegisterInput{
		Email: "a@x.com", FullName: "Alice", Password: "secret1",
	})
	require.NoError(t, err)

	u, err := s.GetProfile(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.FullName)

	_, err = s.GetProfile(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
