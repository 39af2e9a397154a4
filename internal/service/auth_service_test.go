package service

import (
	"context"
	"testing"

	"clinicore/internal/apierror"
	"clinicore/internal/config"
	"clinicore/internal/dto"
	"clinicore/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		SeedAdminEmail:     "admin@clinicore.local",
		SeedAdminPassword:  "changeme123",
	}
}

func TestLoginAndTokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	cfg := testAuthConfig()
	svc := NewAuthService(repo, cfg)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "Doctor@Clinic.com",
		Password: "s3cret99",
		Role:     model.RoleStaff,
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "doctor@clinic.com", Password: "s3cret99"})
	require.NoError(t, err)
	assert.Equal(t, "doctor@clinic.com", resp.User.Email)
	assert.Equal(t, model.RoleStaff, resp.User.Role)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "doctor@clinic.com", claims["email"])
	assert.Equal(t, model.RoleStaff, claims["role"])
	assert.NotEmpty(t, claims["exp"])
}

func TestLoginFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Email: "doc@clinic.com", Password: "s3cret99", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	// Same opaque message for unknown email and wrong password.
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@clinic.com", Password: "s3cret99"})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindUnauthenticated))

	_, err2 := svc.Login(ctx, dto.LoginRequest{Email: "doc@clinic.com", Password: "wrong"})
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Email: "former@clinic.com", Password: "s3cret99", Role: model.RoleStaff,
	})
	require.NoError(t, err)
	repo.users["former@clinic.com"].Active = false

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "former@clinic.com", Password: "s3cret99"})
	assert.True(t, apierror.IsKind(err, apierror.KindUnauthenticated))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testAuthConfig())
	ctx := context.Background()

	req := dto.RegisterRequest{Email: "doc@clinic.com", Password: "s3cret99", Role: model.RoleStaff}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestSeedDefaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testAuthConfig())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	n, _ := repo.Count(ctx)
	assert.EqualValues(t, 4, n)

	admin, err := repo.FindByEmail(ctx, "admin@clinicore.local")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	// Idempotent: a populated table is left alone.
	require.NoError(t, svc.SeedDefaults(ctx))
	n, _ = repo.Count(ctx)
	assert.EqualValues(t, 4, n)
}
