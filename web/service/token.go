package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is fixed; there is no refresh mechanism, a token stays valid
// until natural expiry.
const tokenTTL = 3 * time.Hour

// AuthClaims is the claim set carried by every issued bearer token.
type AuthClaims struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService mints and validates HMAC-SHA256 signed bearer tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}
}

// Mint creates a signed token for the user carrying the role set held at
// issuance time. Later role grants do not show up in already-issued tokens.
func (s *TokenService) Mint(user *model.User) (string, time.Time, error) {
	expiration := time.Now().Add(tokenTTL)

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}

	claims := &AuthClaims{
		Name:  user.Username,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(expiration),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiration, nil
}

// Parse validates the signature and expiry of a bearer token and returns its
// claims. Issuer and audience are stamped on issue but not enforced here.
func (s *TokenService) Parse(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
