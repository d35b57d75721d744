package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/photo-studio/internal/models"
)

// Claims do token de acesso. Subject é o id do usuário.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(u *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Name:  u.DisplayName,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.Secret)
}

func (s *Service) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.opts.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}

// remaining é quanto falta para o token expirar; revogações vivem só isso.
func (s *Service) remaining(c *Claims) time.Duration {
	if c.ExpiresAt == nil {
		return s.opts.TokenTTL
	}
	d := c.ExpiresAt.Time.Sub(s.now())
	if d <= 0 {
		return time.Second
	}
	return d
}
