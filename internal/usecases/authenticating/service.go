package authenticating

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/allocation-planner-api/internal/config"
	"github.com/vfg2006/allocation-planner-api/internal/domain"
	"github.com/vfg2006/allocation-planner-api/pkg/apiErrors"
)

// Authenticator valida os tokens emitidos pelo provedor de identidade do back office.
// Cadastro de usuários e login ficam fora deste serviço.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{
		cfg: cfg,
	}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}
