package service

import (
	"fmt"
	"time"

	"github.com/Bastianbone18/trasera/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are embedded in every bearer token.
type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// uidClaims back the x-token credential: only the user id, no expiry.
type uidClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the two HS256 token flavors.
type TokenService interface {
	Emitir(u *model.Usuario) (string, error)
	Verificar(token string) (*Claims, error)
	EmitirUID(uid uuid.UUID) (string, error)
	VerificarUID(token string) (uuid.UUID, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return NewTokenServiceWithClock(secret, ttl, time.Now)
}

// NewTokenServiceWithClock lets tests control issuance and expiry time.
func NewTokenServiceWithClock(secret string, ttl time.Duration, now func() time.Time) TokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl, now: now}
}

func (s *tokenService) Emitir(u *model.Usuario) (string, error) {
	now := s.now()
	claims := Claims{
		ID:   u.ID.String(),
		Name: u.Nombre,
		Role: u.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Verificar(token string) (*Claims, error) {
	claims := &Claims{}
	// exp is mandatory here so an x-token can never pass as a bearer token.
	if err := s.parse(token, claims, jwt.WithExpirationRequired()); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: id ausente", ErrTokenInvalido)
	}
	return claims, nil
}

func (s *tokenService) EmitirUID(uid uuid.UUID) (string, error) {
	claims := uidClaims{
		UID:              uid.String(),
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(s.now())},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) VerificarUID(token string) (uuid.UUID, error) {
	claims := &uidClaims{}
	if err := s.parse(token, claims); err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.Parse(claims.UID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: uid mal formado", ErrTokenInvalido)
	}
	return uid, nil
}

func (s *tokenService) parse(token string, claims jwt.Claims, extra ...jwt.ParserOption) error {
	opts := append([]jwt.ParserOption{
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}, extra...)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}
	if !parsed.Valid {
		return ErrTokenInvalido
	}
	return nil
}
