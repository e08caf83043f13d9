// Package auth issues and verifies the HMAC bearer tokens used by the API.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is where the middleware stores the authenticated user ID.
const ContextKeyUserID = "user_id"

// Issuer tags every token this service signs.
const Issuer = "mindsense"

// DefaultTokenTTL bounds token lifetime when callers pass no TTL.
const DefaultTokenTTL = 24 * time.Hour

// GenerateToken signs a token for userID.
func GenerateToken(secret, userID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("auth: secret required")
	}
	if userID == "" {
		return "", fmt.Errorf("auth: user id required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates a token and returns its subject.
func VerifyToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token payload")
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("token subject missing")
	}
	return subject, nil
}

// Middleware authenticates API requests. With a secret configured it
// requires a Bearer token; without one (demo mode) it trusts the X-User-ID
// header so the API stays usable locally.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				userID := strings.TrimSpace(c.Request().Header.Get("X-User-ID"))
				if userID == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing X-User-ID header")
				}
				c.Set(ContextKeyUserID, userID)
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			userID, err := VerifyToken(secret, tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token").SetInternal(err)
			}
			c.Set(ContextKeyUserID, userID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user ID from the request context.
func UserID(c echo.Context) string {
	userID, _ := c.Get(ContextKeyUserID).(string)
	return userID
}
