package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"conduit/internal/model"
)

// TokenService issues and verifies stateless HS256 session tokens. The secret
// and lifetime come from process configuration; the clock is injectable so
// expiry can be tested without sleeping.
type TokenService struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, maxAge time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Generate produces a signed token embedding the user identity and an
// absolute expiry.
func (s *TokenService) Generate(userID int64, username string) (string, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      issuedAt.Add(s.maxAge).Unix(),
		"iat":      issuedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns its claims. Any failure, whether a bad
// signature, a malformed payload or an expired token, collapses into
// model.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	return &model.TokenClaims{
		UserID:    int64(userIDFloat),
		Username:  username,
		ExpiresAt: time.Unix(int64(expFloat), 0),
	}, nil
}
