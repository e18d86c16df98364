package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// IssueAccessToken signs an access token carrying the identity claims.
	IssueAccessToken(identity user.Identity) (token string, expiresAt int64, err error)
	// ParseAccessToken verifies a raw token and resolves its identity.
	ParseAccessToken(tokenString string) (user.Identity, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) IssueAccessToken(identity user.Identity) (token string, expiresAt int64, err error) {
	if j.accessTokenExpirationTime <= 0 {
		return "", 0, fmt.Errorf("access token expiration must be positive, got %s", j.accessTokenExpirationTime)
	}
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	claims := identity.Claims()
	claims["exp"] = expiresAt

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseAccessToken(tokenString string) (user.Identity, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return user.Identity{}, err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return user.Identity{}, fmt.Errorf("failed to read token claims: %w", err)
	}

	return user.IdentityFromClaims(claims)
}
