package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/cli"
	"github.com/brisa-edu/brisa-client/internal/config"
	"github.com/brisa-edu/brisa-client/internal/mockapi"
	"github.com/brisa-edu/brisa-client/internal/session"
	"github.com/brisa-edu/brisa-client/internal/storage"
)

type harness struct {
	app *cli.App
	kv  *storage.MemoryStore
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api, err := mockapi.NewAPI(mockapi.Config{BcryptCost: bcrypt.MinCost, Logger: zap.NewNop()})
	require.NoError(t, err)
	srv := httptest.NewServer(api.Routes())
	t.Cleanup(srv.Close)

	h := &harness{kv: storage.NewMemoryStore(), out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	h.app = cli.NewApp(&config.Config{APIBaseURL: srv.URL, ExportDir: t.TempDir()}, zap.NewNop())
	h.app.Storage = h.kv
	h.app.HTTPOptions = []apiclient.Option{apiclient.WithHTTPClient(srv.Client())}
	h.app.In = strings.NewReader("")
	h.app.Out = h.out
	h.app.Err = h.err
	return h
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.err.Reset()
	return cli.Execute(context.Background(), h.app, args)
}

func TestLoginWithFlagsAndWhoami(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("login", "-u", "director", "-p", "director123"))
	assert.Contains(t, h.out.String(), "Logged in as director (Director)")

	token, ok, err := h.kv.Get(context.Background(), session.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	require.NoError(t, h.run("whoami", "-o", "json"))
	var u session.User
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &u))
	assert.Equal(t, "director", u.Usuario)
	assert.Equal(t, "Director", u.Rol)
}

func TestLoginPrompts(t *testing.T) {
	h := newHarness(t)
	h.app.In = strings.NewReader("admin\nadmin123\n")

	require.NoError(t, h.run("login"))
	assert.Contains(t, h.out.String(), "Logged in as admin (Admin)")
	assert.Contains(t, h.err.String(), "Usuario: ")
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t)

	err := h.run("login", "-u", "admin", "-p", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Usuario o contraseña incorrectos")
	assert.NotErrorIs(t, err, cli.ErrSessionExpired)
}

func TestWhoamiSignedOut(t *testing.T) {
	h := newHarness(t)

	err := h.run("whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestListStudentsJSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	require.NoError(t, h.run("students", "list", "-o", "json"))
	var students []map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &students))
	assert.Len(t, students, 4)
}

func TestListCoursesTable(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	require.NoError(t, h.run("courses", "list"))
	assert.Contains(t, h.out.String(), "1ro Primaria")
	assert.Contains(t, h.out.String(), "2do Secundaria")
}

func TestReportExportLocal(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	require.NoError(t, h.run("reports", "notes", "frequent-codes", "--export", "local"))
	assert.Contains(t, h.out.String(), "O01")
	require.Contains(t, h.err.String(), "exported to ")

	loc := strings.TrimSpace(strings.TrimPrefix(h.err.String(), "exported to "))
	assert.Equal(t, filepath.Join(h.app.Config.ExportDir, "reports"), filepath.Dir(loc))
	assert.True(t, strings.HasPrefix(filepath.Base(loc), "esquelas-frequent-codes-"))
	assert.Equal(t, ".csv", filepath.Ext(loc))

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Contains(t, string(b), "O01")
}

func TestExportR2NeedsCredentials(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	err := h.run("reports", "academic", "workload", "--export", "r2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BRISA_R2_BUCKET_NAME")
}

func TestInvalidTokenExpiresSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.kv.Set(context.Background(), session.TokenKey, "not-a-jwt"))

	err := h.run("students", "list")
	assert.ErrorIs(t, err, cli.ErrSessionExpired)

	_, ok, err := h.kv.Get(context.Background(), session.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssignDeniedForProfessor(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "lgutierrez", "-p", "profesor123"))

	err := h.run("professors", "assign", "30", "12", "23")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No tienes permisos para asignar materias a profesores")
	assert.Contains(t, err.Error(), "Profesor")
}

func TestAssignAsDirector(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "director", "-p", "director123"))

	require.NoError(t, h.run("professors", "assign", "30", "12", "23"))
	require.NoError(t, h.run("professors", "assignments", "30", "-o", "json"))
	var as []map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &as))
	assert.Len(t, as, 3)

	require.NoError(t, h.run("professors", "unassign", "30", "12", "23"))
}

func TestNotesReportByPeriod(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	require.NoError(t, h.run("reports", "notes", "by-period", "-o", "json"))
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024", rows[0]["periodo"])
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("login", "-u", "admin", "-p", "admin123"))

	require.NoError(t, h.run("logout"))
	assert.Contains(t, h.out.String(), "Logged out")
	_, ok, err := h.kv.Get(context.Background(), session.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
