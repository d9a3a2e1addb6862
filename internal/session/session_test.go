package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
	"github.com/brisa-edu/brisa-client/internal/permissions"
	"github.com/brisa-edu/brisa-client/internal/session"
	"github.com/brisa-edu/brisa-client/internal/storage"
)

type fixture struct {
	srv     *httptest.Server
	kv      storage.Store
	client  *apiclient.Client
	store   *session.Store
	expired int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api, err := mockapi.NewAPI(mockapi.Config{BcryptCost: bcrypt.MinCost, Logger: zap.NewNop()})
	require.NoError(t, err)
	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)

	f := &fixture{srv: srv, kv: storage.NewMemoryStore()}
	f.store, f.client = f.open()
	return f
}

// open builds a client and session over the fixture's storage, the way a
// fresh process would.
func (f *fixture) open() (*session.Store, *apiclient.Client) {
	client := apiclient.New(f.srv.URL,
		apiclient.WithHTTPClient(f.srv.Client()),
		apiclient.WithTokenSource(session.NewTokenSource(f.kv)),
		apiclient.WithLogger(zap.NewNop()),
	)
	s := session.New(f.kv, client, session.Options{
		OnExpired: func() { f.expired++ },
		Logger:    zap.NewNop(),
	})
	return s, client
}

func (f *fixture) has(t *testing.T, key string) bool {
	t.Helper()
	_, ok, err := f.kv.Get(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestInitWithoutTokenIsAnonymous(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.store.IsLoading())

	require.NoError(t, f.store.Init(context.Background()))
	assert.Equal(t, session.Anonymous, f.store.State())
	assert.False(t, f.store.IsLoading())
	assert.Nil(t, f.store.User())
}

func TestLoginPersistsAndInitRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)
	assert.Equal(t, "Director", resp.Rol)
	assert.True(t, f.store.IsAuthenticated())
	assert.Equal(t, resp.AccessToken, f.store.Token())
	assert.True(t, f.has(t, session.TokenKey))
	assert.True(t, f.has(t, session.UserKey))

	restored, _ := f.open()
	require.NoError(t, restored.Init(ctx))
	assert.True(t, restored.IsAuthenticated())
	u := restored.User()
	require.NotNil(t, u)
	assert.Equal(t, "director", u.Usuario)
	assert.Equal(t, "Director", u.Rol)
	require.NotNil(t, u.IDPersona)
	assert.Equal(t, 101, *u.IDPersona)
	assert.Equal(t, 0, f.expired)
}

func TestLoginFailureLeavesSessionClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Login(ctx, "director", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apiclient.StatusOf(err))
	assert.Equal(t, session.Anonymous, f.store.State())
	assert.False(t, f.has(t, session.TokenKey))
	assert.Equal(t, 0, f.expired, "a failed login is not an expired session")
}

func TestLogoutClearsEvenWhenServerIsDown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)

	f.srv.Close()
	require.NoError(t, f.store.Logout(ctx))
	assert.Equal(t, session.Anonymous, f.store.State())
	assert.False(t, f.has(t, session.TokenKey))
	assert.False(t, f.has(t, session.UserKey))
}

func TestUnauthorizedResponseExpiresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)

	require.NoError(t, f.kv.Set(ctx, session.TokenKey, "not-a-token"))
	_, err = f.client.Students.ListStudents(ctx)
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))

	assert.Equal(t, 1, f.expired)
	assert.False(t, f.store.IsAuthenticated())
	assert.False(t, f.has(t, session.TokenKey))
	assert.False(t, f.has(t, session.UserKey))
}

func TestInitWithRevokedTokenClears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)
	require.NoError(t, f.client.Auth.Logout(ctx))

	restored, _ := f.open()
	require.NoError(t, restored.Init(ctx))
	assert.Equal(t, session.Anonymous, restored.State())
	assert.False(t, f.has(t, session.TokenKey))
}

func TestRefreshSwapsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)

	require.NoError(t, f.store.Refresh(ctx))
	assert.NotEqual(t, resp.AccessToken, f.store.Token())
	stored, _, err := f.kv.Get(ctx, session.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, f.store.Token(), stored)

	_, err = f.client.Auth.Me(ctx)
	assert.NoError(t, err)
}

func TestRefreshFailureLogsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Login(ctx, "director", "director123")
	require.NoError(t, err)

	f.srv.Close()
	require.Error(t, f.store.Refresh(ctx))
	assert.Equal(t, session.Anonymous, f.store.State())
	assert.False(t, f.has(t, session.TokenKey))
}

func TestPersonIDFallsBackToClaims(t *testing.T) {
	f := newFixture(t)
	_, ok := f.store.PersonID()
	assert.False(t, ok)

	_, err := f.store.Login(context.Background(), "lgutierrez", "profesor123")
	require.NoError(t, err)
	id, ok := f.store.PersonID()
	require.True(t, ok)
	assert.Equal(t, 102, id)
}

func TestAdministratorPredicates(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	assert.True(t, f.store.IsAdministrator())
	assert.True(t, f.store.CanAccessModule("anything"))
	assert.True(t, f.store.CanPerformAction("borrar_todo"))
	assert.True(t, f.store.HasModulePermission("reportes", "Eliminar"))
	assert.Len(t, f.store.MenuModules(), 7)
}

func TestProfessorPredicates(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Login(context.Background(), "lgutierrez", "profesor123")
	require.NoError(t, err)

	assert.False(t, f.store.IsAdministrator())
	assert.Equal(t, "Profesor", f.store.Role())
	assert.True(t, f.store.HasPermission("Agregar"))
	assert.False(t, f.store.HasPermission("Eliminar"))
	assert.True(t, f.store.CanAccessModule("esquelas"))
	assert.False(t, f.store.CanAccessModule("usuarios"))
	assert.True(t, f.store.CanPerformAction("crear_esquelas"))
	assert.ElementsMatch(t, []string{"Lectura", "Agregar"}, f.store.ModulePermissions("esquelas"))
	assert.Equal(t, []string{}, f.store.ModulePermissions("usuarios"))
	assert.False(t, f.store.HasModulePermission("reportes", "Agregar"))

	var ids []string
	for _, m := range f.store.MenuModules() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"esquelas", "reportes"}, ids)
}

func TestSignedOutPredicates(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.store.IsAdministrator())
	assert.False(t, f.store.HasPermission("Lectura"))
	assert.Empty(t, f.store.MenuModules())
	assert.Equal(t, "", f.store.Role())
}

// stubAuth answers the auth endpoints with fixed envelopes and counts
// logout calls.
type stubAuth struct {
	login, me string
	logouts   int
}

func (s *stubAuth) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/login":
		_, _ = w.Write([]byte(s.login))
	case "/auth/me":
		_, _ = w.Write([]byte(s.me))
	case "/auth/logout":
		s.logouts++
		_, _ = w.Write([]byte(`{"status":"success","message":"ok"}`))
	default:
		http.NotFound(w, r)
	}
}

func newStubStore(t *testing.T, stub *stubAuth) (*session.Store, storage.Store) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(stub.handler))
	t.Cleanup(srv.Close)
	kv := storage.NewMemoryStore()
	client := apiclient.New(srv.URL,
		apiclient.WithHTTPClient(srv.Client()),
		apiclient.WithTokenSource(session.NewTokenSource(kv)),
		apiclient.WithLogger(zap.NewNop()),
	)
	return session.New(kv, client, session.Options{Logger: zap.NewNop()}), kv
}

func TestLoginRejectsReplyWithoutData(t *testing.T) {
	for name, body := range map[string]string{
		"null data":    `{"status":"success","data":null}`,
		"missing data": `{"status":"success","message":"ok"}`,
		"empty token":  `{"status":"success","data":{"access_token":"","usuario":"admin","rol":"Admin"}}`,
		"odd status":   `{"status":"pending","data":{"access_token":"tok"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			s, kv := newStubStore(t, &stubAuth{login: body})
			ctx := context.Background()

			_, err := s.Login(ctx, "admin", "admin123")
			require.Error(t, err)
			assert.Equal(t, session.Anonymous, s.State())
			assert.Empty(t, s.Token())
			assert.Nil(t, s.User())
			_, ok, err := kv.Get(ctx, session.TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLoginEmptyTokenIsInvalidLogin(t *testing.T) {
	s, _ := newStubStore(t, &stubAuth{login: `{"status":"success","data":{"access_token":"","usuario":"admin"}}`})

	_, err := s.Login(context.Background(), "admin", "admin123")
	assert.ErrorIs(t, err, session.ErrInvalidLogin)
}

func TestFailedLoginLogsOutHeldToken(t *testing.T) {
	stub := &stubAuth{login: `{"status":"error","message":"Usuario inactivo"}`}
	s, kv := newStubStore(t, stub)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, session.TokenKey, "old-token"))
	require.NoError(t, kv.Set(ctx, session.UserKey, `{"usuario":"admin"}`))

	_, err := s.Login(ctx, "admin", "admin123")
	require.Error(t, err)
	assert.Equal(t, 1, stub.logouts)
	_, ok, err := kv.Get(ctx, session.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = kv.Get(ctx, session.UserKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitRejectsProfileWithoutData(t *testing.T) {
	for name, body := range map[string]string{
		"null data":  `{"status":"success","data":null}`,
		"empty user": `{"status":"success","data":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			s, kv := newStubStore(t, &stubAuth{me: body})
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, session.TokenKey, "tok"))

			require.NoError(t, s.Init(ctx))
			assert.Equal(t, session.Anonymous, s.State())
			assert.Nil(t, s.User())
			_, ok, err := kv.Get(ctx, session.TokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNilStoreHasNoRole(t *testing.T) {
	var s *session.Store
	assert.Empty(t, s.Role())
	assert.False(t, permissions.CanManageCourses(s))
	assert.Equal(t, "Usuario", permissions.Verify(s, permissions.Courses).Role)
}
