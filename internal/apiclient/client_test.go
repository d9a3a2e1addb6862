package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/brisa-edu/brisa-client/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *BaseClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts := []Option{WithHTTPClient(srv.Client()), WithLogger(zap.NewNop())}
	if token != "" {
		opts = append(opts, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))
	}
	return NewBaseClient(srv.URL+"/api/", opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestDoSetsHeadersAndBody(t *testing.T) {
	var gotAuth, gotType, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{"id_materia": 3, "nombre_materia": "Física"})
	}, "tok-123")

	var out models.Subject
	err := c.Post(context.Background(), "materias/", map[string]any{"nombre_materia": "Física"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "/api/materias/", gotPath)
	assert.Equal(t, "Física", gotBody["nombre_materia"])
	assert.Equal(t, 3, out.IDMateria)
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	var hadAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		writeJSON(w, http.StatusOK, []any{})
	}, "")

	require.NoError(t, c.Get(context.Background(), "/materias/", nil))
	assert.False(t, hadAuth)
}

func TestDoExtraHeadersOverrideDefaults(t *testing.T) {
	var gotType string
	var hadAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	extra := http.Header{"Content-Type": {"text/plain"}, "Authorization": nil}
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/x", nil, nil, extra))
	assert.Equal(t, "text/plain", gotType)
	assert.False(t, hadAuth)
}

func TestDoNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	out := map[string]any{"untouched": true}
	require.NoError(t, c.Delete(context.Background(), "/materias/1", &out))
	assert.Equal(t, true, out["untouched"])
}

func TestDoErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		message string
	}{
		{"message field", http.StatusBadRequest, map[string]any{"message": "curso duplicado"}, "curso duplicado"},
		{"detail string", http.StatusNotFound, map[string]any{"detail": "Estudiante no encontrado"}, "Estudiante no encontrado"},
		{"detail list", http.StatusUnprocessableEntity, map[string]any{"detail": []any{map[string]any{"msg": "field required"}}}, "HTTP Error: 422"},
		{"no body", http.StatusInternalServerError, nil, "HTTP Error: 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}, "")

			err := c.Get(context.Background(), "/estudiantes/9", nil)
			var apiErr *models.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.NotNil(t, apiErr.Details)
		})
	}
}

func TestDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewBaseClient(url, WithLogger(zap.NewNop()))
	err := c.Get(context.Background(), "/health", nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, ConnectionErrorMessage, err.Error())
}

func TestDoUnauthorizedRunsHandlerFirst(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token inválido"})
	}, "expired")
	c.SetUnauthorizedHandler(func(context.Context) { atomic.AddInt32(&calls, 1) })

	err := c.Get(context.Background(), "/estudiantes/", nil)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestStatusOfForeignError(t *testing.T) {
	assert.Equal(t, -1, StatusOf(errors.New("boom")))
}

func TestAuthEnvelopeErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": "usuario inactivo"})
	}, "")

	_, err := NewAuthClient(c).Login(context.Background(), &models.LoginRequest{Usuario: "a", Password: "b"})
	var apiErr *models.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, "usuario inactivo", apiErr.Message)
}

func TestAuthEnvelopeNeedsSuccessAndData(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{name: "null data", body: map[string]any{"status": "success", "data": nil}, message: noDataMessage},
		{name: "missing data", body: map[string]any{"status": "success", "message": "ok"}, message: noDataMessage},
		{name: "missing status", body: map[string]any{"data": map[string]any{"access_token": "tok"}}, message: "request rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			}, "")

			resp, err := NewAuthClient(c).Login(context.Background(), &models.LoginRequest{Usuario: "a", Password: "b"})
			assert.Nil(t, resp)
			var apiErr *models.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusOK, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAuthEnvelopeWithoutDataIsFineForActions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Sesión cerrada"})
	}, "tok")
	auth := NewAuthClient(c)

	assert.NoError(t, auth.Logout(context.Background()))
	assert.NoError(t, auth.AssignRole(context.Background(), 1, 2))
	roles, err := auth.ListRoles(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAuthChecksFalseOnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "tok")
	auth := NewAuthClient(c)

	assert.False(t, auth.CanAccessModule(context.Background(), "usuarios"))
	assert.False(t, auth.VerifyAction(context.Background(), "crear_usuario"))
}

func TestAuthListUsersDefaultsPage(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": []any{}})
	}, "tok")

	users, err := NewAuthClient(c).ListUsers(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, "skip=0&limit=50", gotQuery)
}

func TestEsquelaPeriodDefaultsToYear(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []any{})
	}, "tok")

	_, err := NewEsquelaClient(c).AggregateByPeriod(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "group_by=year", gotQuery)
}

func TestStatusHealthUnquotes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok")
	}, "")

	got, err := NewStatusClient(c).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
