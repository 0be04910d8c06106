package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/petmeet/petmeet/config"
	"github.com/petmeet/petmeet/models"
)

// Token types carried in the "typ" claim.
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims defines JWT claims used in the application.
type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"typ"`
	Version   int    `json:"ver"`
	jwt.RegisteredClaims
}

// TokenPair is returned by sign-in.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer signs HS256 tokens with secret.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// NewTokenIssuerFromConfig uses JWTSecret and the configured token lifetimes.
func NewTokenIssuerFromConfig(cfg config.AppConfig) *TokenIssuer {
	return NewTokenIssuer(cfg.JWTSecret,
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenHours)*time.Hour)
}

// IssuePair signs a fresh access and refresh token for u.
func (i *TokenIssuer) IssuePair(u *models.User) (TokenPair, error) {
	access, err := i.sign(u.ID, u.TokenVersion, AccessToken, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(u.ID, u.TokenVersion, RefreshToken, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess signs an access token carrying the same identity as refresh claims.
func (i *TokenIssuer) IssueAccess(c *Claims) (string, error) {
	return i.sign(c.UserID, c.Version, AccessToken, i.accessTTL)
}

func (i *TokenIssuer) sign(userID uint, version int, typ string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:    userID,
		TokenType: typ,
		Version:   version,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates a token of the expected type and returns its claims.
func (i *TokenIssuer) Parse(tokenStr, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
