// Package auth issues and checks the tokens and secrets of the assist API.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token audiences. An action token is never accepted as an access token and vice versa.
const (
	audienceAccess = "access"
	audienceAction = "action"
)

// ErrActionTokenMismatch means a valid action token was presented by another user.
var ErrActionTokenMismatch = errors.New("action token belongs to another user")

// JWTManager signs and validates HS256 access tokens (who is calling) and
// action tokens (that an assist request comes from a page the server rendered
// for that user).
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	actionTTL time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL, actionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		actionTTL: actionTTL,
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken creates a signed access token with the user ID as subject.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	claims := accessClaims{
		RegisteredClaims: m.registered(userID, audienceAccess, m.accessTTL),
		Role:             role,
	}
	return m.sign(claims)
}

// ValidateAccessToken parses and validates an access token.
// Returns the user ID and role if valid.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	claims := &accessClaims{}
	if err := m.parse(tokenString, audienceAccess, claims); err != nil {
		return uuid.Nil, "", err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject UUID: %w", err)
	}

	return userID, claims.Role, nil
}

// GenerateActionToken creates the per-user authenticity token every assist
// request must carry.
func (m *JWTManager) GenerateActionToken(userID uuid.UUID) (string, error) {
	return m.sign(m.registered(userID, audienceAction, m.actionTTL))
}

// ValidateActionToken checks that tokenString is a live action token issued to userID.
func (m *JWTManager) ValidateActionToken(tokenString string, userID uuid.UUID) error {
	claims := &jwt.RegisteredClaims{}
	if err := m.parse(tokenString, audienceAction, claims); err != nil {
		return err
	}
	if claims.Subject != userID.String() {
		return ErrActionTokenMismatch
	}
	return nil
}

func (m *JWTManager) registered(userID uuid.UUID, audience string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        newTokenID(),
		Subject:   userID.String(),
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func (m *JWTManager) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) parse(tokenString, audience string, claims jwt.Claims) error {
	if tokenString == "" {
		return fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token claims")
	}
	return nil
}

func newTokenID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
