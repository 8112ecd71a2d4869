package security

import (
	"errors"
	"fmt"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingJWTSecret = errors.New("missing JWT secret")
	ErrInvalidToken     = errors.New("invalid token")
)

const defaultTokenTTL = 8 * time.Hour

type tokenClaims struct {
	Name         string   `json:"name"`
	Document     string   `json:"document"`
	Perfil       string   `json:"perfil"`
	Capabilities []string `json:"caps,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 tokens carrying the actor claims.

type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ interfaces.ITokenService = (*JWTService)(nil)

func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}, nil
}

func (s *JWTService) Generate(user entities.User) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Name:         user.Name,
		Document:     user.Document,
		Perfil:       string(user.Role),
		Capabilities: user.Capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) Parse(token string) (*entities.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &entities.Actor{
		ID:           claims.Subject,
		Name:         claims.Name,
		Document:     claims.Document,
		Role:         entities.Role(claims.Perfil),
		Capabilities: claims.Capabilities,
	}, nil
}
