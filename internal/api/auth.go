package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

var errUnauthorized = errors.New("unauthorized")

// Auth resolves the authenticated user id of an HTTP request from a Bearer
// JWT. Keys come from a JWKS endpoint and are refreshed in the background.
type Auth struct {
	keyFn jwt.Keyfunc
	jwks  *keyfunc.JWKS
}

// NewAuth fetches the JWKS at jwksURL and keeps it fresh.
func NewAuth(jwksURL string) (*Auth, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			slog.Error("refreshing jwks", "error", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching jwks from %q: %w", jwksURL, err)
	}
	return &Auth{keyFn: jwks.Keyfunc, jwks: jwks}, nil
}

// NewStaticAuth builds an Auth around a fixed keyfunc, bypassing JWKS.
func NewStaticAuth(fn jwt.Keyfunc) *Auth {
	return &Auth{keyFn: fn}
}

// Close stops the background JWKS refresh.
func (a *Auth) Close() {
	if a.jwks != nil {
		a.jwks.EndBackground()
	}
}

// UserID validates the Authorization header and returns the token's subject.
// Every failure maps to errUnauthorized; the cause is not surfaced to the
// client.
func (a *Auth) UserID(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", fmt.Errorf("%w: missing bearer token", errUnauthorized)
	}

	token, err := jwt.Parse(raw, a.keyFn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", errUnauthorized)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: token has no subject", errUnauthorized)
	}

	return sub, nil
}
