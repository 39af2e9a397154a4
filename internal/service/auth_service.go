package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinicore/internal/apierror"
	"clinicore/internal/config"
	"clinicore/internal/dto"
	"clinicore/internal/model"
	"clinicore/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService issues and backs the signed identity claims. Accounts live in
// the production store only; role assignment is immutable after creation.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	// SeedDefaults creates the initial accounts when the user table is empty.
	SeedDefaults(ctx context.Context) error
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierror.Unauthenticated("Invalid email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthenticated("Invalid email or password.")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{Email: user.Email, Role: user.Role},
	}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict("Email already registered.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{Email: user.Email, Role: user.Role}, nil
}

func (s *authService) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []struct{ email, role string }{
		{s.cfg.SeedAdminEmail, model.RoleAdmin},
		{"staff@clinicore.local", model.RoleStaff},
		{"visitor@clinicore.local", model.RoleVisitor},
		{"visitor-staff@clinicore.local", model.RoleVisitorStaff},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SeedAdminPassword), 12)
	if err != nil {
		return err
	}
	for _, seed := range seeds {
		u := &model.User{Email: seed.email, PasswordHash: string(hash), Role: seed.role, Active: true}
		if err := s.repo.Create(ctx, u); err != nil {
			return err
		}
		log.Info().Str("email", seed.email).Str("role", seed.role).Msg("seeded user")
	}
	return nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
