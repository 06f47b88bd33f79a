package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/apperrors"
	"github.com/sufia0/social-dashboard/internal/models"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
}

func NewAuthService(cfg config.Config, u repository.UserRepository) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (int64, error) {
	_, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userID, err := s.u.Create(ctx, nil, &models.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.Auth("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Auth("invalid email or password")
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, fmt.Sprintf("%d", user.ID), tokenDuration)
	if err != nil {
		return "", err
	}

	return token, nil
}
