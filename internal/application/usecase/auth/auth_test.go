package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/assistant-relay/internal/domain/user"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/auth"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type memoryUserRepo struct {
	byEmail map[string]*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]*user.User{}}
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *memoryUserRepo) Save(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	r.byEmail[u.Email] = u
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	jwtSvc := auth.NewJWTService("secret", time.Hour)

	registered, err := NewRegisterUseCase(repo, logger.NewNop()).Execute(ctx, RegisterInput{Email: " Me@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", registered.Email)
	assert.NotEqual(t, "secret1", registered.PasswordHash)

	out, err := NewLoginUseCase(repo, jwtSvc, logger.NewNop()).Execute(ctx, LoginInput{Email: "me@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.OwnerID)
}

func TestRegister_Validation(t *testing.T) {
	uc := NewRegisterUseCase(newMemoryUserRepo(), logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), RegisterInput{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), RegisterInput{Email: "a@b.co", Password: "123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), RegisterInput{Email: "Bob <bob@b.co>", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), RegisterInput{Email: "a@b.co", Password: strings.Repeat("x", 80)})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := NewRegisterUseCase(newMemoryUserRepo(), logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret2"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepo()
	_, err := NewRegisterUseCase(repo, logger.NewNop()).Execute(ctx, RegisterInput{Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	login := NewLoginUseCase(repo, auth.NewJWTService("secret", time.Hour), logger.NewNop())

	_, err = login.Execute(ctx, LoginInput{Email: "a@b.co", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = login.Execute(ctx, LoginInput{Email: "nobody@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
