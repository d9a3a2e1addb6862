package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/brisa-edu/brisa-client/internal/storage"
)

// ErrNoToken is returned when no access token is available.
var ErrNoToken = errors.New("session: no access token")

// ErrInvalidLogin is returned when a login reply carries no token.
var ErrInvalidLogin = errors.New("session: invalid login response")

type tokenSource struct {
	kv storage.Store
}

// NewTokenSource returns a token source that reads the persisted access
// token on every call, so a login or logout in the same process is picked
// up immediately.
func NewTokenSource(kv storage.Store) oauth2.TokenSource {
	return &tokenSource{kv: kv}
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	raw, ok, err := ts.kv.Get(context.Background(), TokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, ErrNoToken
	}
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if claims, err := ParseClaims(raw); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			tok.Expiry = exp.Time
		}
	}
	return tok, nil
}

// ParseClaims decodes the claims of a JWT without checking its signature.
// The backend stays the authority on validity.
func ParseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: parsing token claims: %w", err)
	}
	return claims, nil
}

// personIDFromClaims reads the numeric id_persona claim.
func personIDFromClaims(token string) (int, bool) {
	claims, err := ParseClaims(token)
	if err != nil {
		return 0, false
	}
	switch v := claims["id_persona"].(type) {
	case float64:
		return int(v), true
	case string:
		var id int
		if _, err := fmt.Sscanf(v, "%d", &id); err == nil {
			return id, true
		}
	}
	return 0, false
}
