package helper

import (
	"errors"
	"fmt"
	"time"

	"restaurant_ordering/model"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs and verifies access tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

type accessClaims struct {
	AccountId uint       `json:"accountId"`
	Name      string     `json:"name"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

func (t *Tokens) GenerateAccessToken(tokenClaim model.TokenClaim) (model.TokenData, error) {
	expires := t.Now().Add(t.TTL)
	claims := accessClaims{
		AccountId: tokenClaim.AccountId,
		Name:      tokenClaim.Name,
		Role:      tokenClaim.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(tokenClaim.AccountId),
			IssuedAt:  jwt.NewNumericDate(t.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: signed, ExpiresAt: expires.Unix()}, nil
}

func (t *Tokens) ParseToken(tokenString string) (model.TokenClaim, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	}, jwt.WithTimeFunc(t.Now))
	if err != nil {
		return model.TokenClaim{}, err
	}
	if !token.Valid || claims.AccountId == 0 {
		return model.TokenClaim{}, errors.New("invalid token")
	}
	return model.TokenClaim{AccountId: claims.AccountId, Name: claims.Name, Role: claims.Role}, nil
}
