package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const resetPurpose = "password-reset"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of an access or reset token. Purpose is empty for access tokens.
type Claims struct {
	UserID  uint   `json:"id"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens. Access and reset tokens use separate
// secrets so a reset token can never authenticate a request.
type TokenIssuer struct {
	secret      []byte
	ttl         time.Duration
	resetSecret []byte
	resetTTL    time.Duration
	now         func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, resetSecret string, resetTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:      []byte(secret),
		ttl:         ttl,
		resetSecret: []byte(resetSecret),
		resetTTL:    resetTTL,
		now:         time.Now,
	}
}

func (t *TokenIssuer) Issue(userID uint) (string, error) {
	return t.sign(userID, "", t.secret, t.ttl)
}

// Validate returns the user id carried by an access token.
func (t *TokenIssuer) Validate(token string) (uint, error) {
	claims, err := t.parse(token, t.secret)
	if err != nil {
		return 0, err
	}
	if claims.Purpose != "" {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (t *TokenIssuer) IssueReset(userID uint) (string, error) {
	return t.sign(userID, resetPurpose, t.resetSecret, t.resetTTL)
}

func (t *TokenIssuer) ValidateReset(token string) (uint, error) {
	claims, err := t.parse(token, t.resetSecret)
	if err != nil {
		return 0, err
	}
	if claims.Purpose != resetPurpose {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

func (t *TokenIssuer) sign(userID uint, purpose string, secret []byte, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
