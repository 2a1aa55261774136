package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/sahzadahmad246/unmatchedlines/internal/config"
	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

var tracer = otel.Tracer("auth")

type AuthService struct {
	secret []byte
	issuer string
}

func NewAuthService(conf config.Auth) *AuthService {
	return &AuthService{
		secret: []byte(conf.JwtSecret),
		issuer: conf.Issuer,
	}
}

type AuthResult struct {
	ActorID string
	Role    domain.Role
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// AuthJwt validates a bearer token and returns the requester it names.
func (s *AuthService) AuthJwt(ctx context.Context, token string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthJwt")
	defer span.End()

	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return nil, err
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		err := fmt.Errorf("invalid token claims")
		span.RecordError(err)
		return nil, err
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		err := fmt.Errorf("jwt issuer mismatch: expected %s, got %s", s.issuer, claims.Issuer)
		span.RecordError(err)
		return nil, err
	}

	if claims.Subject == "" {
		err := fmt.Errorf("jwt subject is empty")
		span.RecordError(err)
		return nil, err
	}

	role := domain.Role(claims.Role)
	switch role {
	case domain.RoleReader, domain.RolePoet, domain.RoleAdmin:
	default:
		role = domain.RoleReader
	}

	return &AuthResult{ActorID: claims.Subject, Role: role}, nil
}

// IssueJwt mints a token for an actor. The REST register flow is its only
// caller; everything else just validates.
func (s *AuthService) IssueJwt(actor domain.Actor) (string, error) {
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: actor.ID,
			Issuer:  s.issuer,
		},
		Role: string(actor.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
