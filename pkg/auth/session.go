package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie slot the browser carries the session token in.
const SessionCookieName = "token"

// DefaultTokenTTL is the session token lifetime when none is configured.
const DefaultTokenTTL = 2 * time.Hour

// Verification failure reasons surfaced to the access gate.
var (
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
)

// SessionClaims is the claims set encoded in a session token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionAuth issues and verifies cookie-borne session tokens
type SessionAuth struct {
	secretKey    []byte
	tokenTTL     time.Duration
	secureCookie bool // controls Secure + SameSite policy on the session cookie
}

// NewSessionAuth creates a new session auth instance
func NewSessionAuth(secretKey string, tokenTTL time.Duration, secureCookie bool) (*SessionAuth, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}

	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}

	return &SessionAuth{
		secretKey:    []byte(secretKey),
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}, nil
}

// Issue signs a session token for the given email.
// The token carries only the email claim plus standard timestamps.
func (a *SessionAuth) Issue(email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "foodgarden",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Expired tokens return ErrTokenExpired; every other failure collapses
// to ErrTokenInvalid so callers can branch on exactly two reasons.
func (a *SessionAuth) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TokenTTL returns the configured session token lifetime.
func (a *SessionAuth) TokenTTL() time.Duration {
	return a.tokenTTL
}

// SessionCookie wraps a signed token for transport. Cookie lifetime
// mirrors the token lifetime so both expire together.
func (a *SessionAuth) SessionCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.tokenTTL),
		MaxAge:   int(a.tokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   a.secureCookie,
		SameSite: a.sameSite(),
	}
}

// ExpiredSessionCookie returns an already-expired clone of the session
// cookie. Logout must mirror the name, path, and flags used at issuance
// or browsers keep the original cookie alive.
func (a *SessionAuth) ExpiredSessionCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   a.secureCookie,
		SameSite: a.sameSite(),
	}
}

// sameSite picks the cookie policy. Cross-site frontends need
// SameSite=None, which browsers only accept together with Secure.
func (a *SessionAuth) sameSite() string {
	if a.secureCookie {
		return "None"
	}
	return "Lax"
}
