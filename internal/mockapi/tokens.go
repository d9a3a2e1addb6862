package mockapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the access token claims the backend issues.
type Claims struct {
	Usuario   string `json:"usuario"`
	Rol       string `json:"rol"`
	IDPersona int    `json:"id_persona"`
	jwt.RegisteredClaims
}

type ctxKey string

const ctxUserKey ctxKey = "currentUser"

func userFromCtx(ctx context.Context) *user {
	if u, ok := ctx.Value(ctxUserKey).(*user); ok {
		return u
	}
	return nil
}

func tokenFromCtx(ctx context.Context) string {
	if t, ok := ctx.Value(ctxKey("token")).(string); ok {
		return t
	}
	return ""
}

// generateAccessToken signs a token for u. The caller holds a.mu.
func (a *API) generateAccessToken(u *user) (string, error) {
	now := time.Now()
	claims := Claims{
		Usuario:   u.Usuario.Usuario,
		Rol:       a.data.primaryRole(u),
		IDPersona: deref(u.IDPersona),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.IDUsuario),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.Secret)
}

func (a *API) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return a.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if a.isRevoked(raw) {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

func hashTokenPlain(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func (a *API) revoke(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[hashTokenPlain(token)] = struct{}{}
}

func (a *API) isRevoked(token string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.revoked[hashTokenPlain(token)]
	return ok
}

// authMiddleware validates the bearer JWT, loads the user and puts it in
// the request context.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeDetail(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}
		claims, err := a.parseToken(parts[1])
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		id, err := strconv.Atoi(claims.Subject)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		a.mu.RLock()
		u, ok := a.data.users[id]
		a.mu.RUnlock()
		if !ok || !u.Active {
			writeDetail(w, http.StatusUnauthorized, "user not found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserKey, u)
		ctx = context.WithValue(ctx, ctxKey("token"), parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly lets Admin users through.
func (a *API) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := userFromCtx(r.Context())
		if u == nil {
			writeDetail(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		a.mu.RLock()
		admin := a.data.isAdmin(u)
		a.mu.RUnlock()
		if !admin {
			writeDetail(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
