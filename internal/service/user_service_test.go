package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/lead-intake/internal/config"
	"github.com/spec-kit/lead-intake/internal/domain"
	"github.com/spec-kit/lead-intake/internal/repository"
)

func newAuthService(users repository.UserRepository) *AuthService {
	return NewAuthService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: bcrypt.MinCost}, AuthDependencies{UserRepo: users})
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(repository.NewMemoryUserRepository())

	reg, err := svc.Register(ctx, RegisterInput{Name: "Maya", Email: "Maya@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, reg.User.Role)
	assert.Equal(t, "maya@example.com", reg.User.Email)
	assert.NotEmpty(t, reg.Token)

	claims, err := svc.TokenManager().ParseToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.Subject)

	_, err = svc.Register(ctx, RegisterInput{Name: "Maya", Email: "maya@example.com", Password: "hunter22"})
	requireDomainError(t, err, 409)

	login, err := svc.Login(ctx, LoginInput{Email: "MAYA@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "maya@example.com", Password: "wrong"})
	requireDomainError(t, err, 401)
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "wrong"})
	requireDomainError(t, err, 401)
	_, err = svc.Register(ctx, RegisterInput{Name: "M", Email: "x", Password: "1"})
	de := requireDomainError(t, err, statusBadRequest)
	assert.Equal(t, []string{"name", "email", "password"}, violationFields(de))
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)

	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "", "secret"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "root@example.com", "secret1"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Root", "root@example.com", "other"))

	admin, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, admin.Role)

	_, total, err := users.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, err = svc.Login(ctx, LoginInput{Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
}

func TestUserService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	auth := newAuthService(users)
	svc := NewUserService(users, nil)

	a, err := auth.Register(ctx, RegisterInput{Name: "Anna", Email: "anna@example.com", Password: "password1", Company: "Acme"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, RegisterInput{Name: "Ben", Email: "ben@example.com", Password: "password1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.User.ID, UserUpdateInput{Role: "admin", Company: "  "})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, updated.Role)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Anna", updated.Name)

	_, err = svc.Update(ctx, a.User.ID, UserUpdateInput{Email: "BEN@example.com"})
	requireDomainError(t, err, 409)

	_, err = svc.Update(ctx, a.User.ID, UserUpdateInput{Role: "root"})
	requireDomainError(t, err, statusBadRequest)

	_, err = svc.Update(ctx, "missing", UserUpdateInput{Name: "Zed"})
	de := requireDomainError(t, err, statusNotFound)
	assert.Equal(t, "User not found", de.Message)

	admins, err := svc.List(ctx, UserQuery{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, 1, admins.Total)

	require.NoError(t, svc.Delete(ctx, a.User.ID))
	requireDomainError(t, svc.Delete(ctx, a.User.ID), statusNotFound)
}
