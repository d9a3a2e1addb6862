package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/models"
)

const (
	DefaultUserPageSize       = 50
	DefaultPermissionPageSize = 100
)

// Auth defines the authentication, user and role operations. Every
// response is the {status, message, data} envelope; the methods return data.
type Auth interface {
	Login(ctx context.Context, in *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.MeResponse, error)
	Refresh(ctx context.Context) (*models.TokenResponse, error)
	MyPermissions(ctx context.Context) (*models.DetailedPermissions, error)
	CanAccessModule(ctx context.Context, module string) bool
	VerifyAction(ctx context.Context, action string) bool

	Register(ctx context.Context, in *models.RegistroUsuarioRequest) (*models.Usuario, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.Usuario, error)
	GetUser(ctx context.Context, id int) (*models.Usuario, error)
	UpdateUser(ctx context.Context, id int, in *models.UsuarioUpdate) (*models.Usuario, error)
	DeleteUser(ctx context.Context, id int) error
	ListRoles(ctx context.Context, skip, limit int) ([]models.Rol, error)
	ListPermissions(ctx context.Context, skip, limit int, module string) ([]models.Permiso, error)
	AssignRole(ctx context.Context, userID, roleID int) error
	AssignPermissionsToRole(ctx context.Context, roleID int, permissionIDs []int) error
}

type authClient struct {
	client *BaseClient
}

func NewAuthClient(client *BaseClient) Auth {
	return &authClient{client: client}
}

// noDataMessage is the APIError message when a successful
// envelope carries no data.
const noDataMessage = "response without data"

// exec performs one enveloped request and returns its raw data.
func exec(ctx context.Context, c *BaseClient, method, endpoint string, body any, extra http.Header) (json.RawMessage, error) {
	var env models.Envelope[json.RawMessage]
	if err := c.Do(ctx, method, endpoint, body, &env, extra); err != nil {
		return nil, err
	}
	return unwrap(&env)
}

// call performs one enveloped request and decodes its data, which must be
// present and not null.
func call[T any](ctx context.Context, c *BaseClient, method, endpoint string, body any, extra http.Header) (T, error) {
	var out T
	raw, err := exec(ctx, c, method, endpoint, body, extra)
	if err != nil {
		return out, err
	}
	if isNull(raw) {
		return out, &models.APIError{Message: noDataMessage, Status: http.StatusOK}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &models.APIError{Message: "invalid response data", Details: err.Error(), Status: http.StatusOK}
	}
	return out, nil
}

// callList is call for collections; a null data field is an empty page.
func callList[T any](ctx context.Context, c *BaseClient, method, endpoint string) ([]T, error) {
	raw, err := exec(ctx, c, method, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &models.APIError{Message: "invalid response data", Details: err.Error(), Status: http.StatusOK}
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func (c *authClient) Login(ctx context.Context, in *models.LoginRequest) (*models.LoginResponse, error) {
	// The login call never carries a stale bearer token.
	noAuth := http.Header{"Authorization": nil}
	out, err := call[models.LoginResponse](ctx, c.client, http.MethodPost, "/auth/login", in, noAuth)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *authClient) Logout(ctx context.Context) error {
	_, err := exec(ctx, c.client, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

func (c *authClient) Me(ctx context.Context) (*models.MeResponse, error) {
	out, err := call[models.MeResponse](ctx, c.client, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *authClient) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	out, err := call[models.TokenResponse](ctx, c.client, http.MethodPost, "/auth/refresh", nil, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *authClient) MyPermissions(ctx context.Context) (*models.DetailedPermissions, error) {
	out, err := call[models.DetailedPermissions](ctx, c.client, http.MethodGet, "/auth/me/permisos", nil, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CanAccessModule asks the backend whether the caller may open module.
// Any failure answers false.
func (c *authClient) CanAccessModule(ctx context.Context, module string) bool {
	path := "/auth/me/puede-acceder/" + encodeComponent(module)
	out, err := call[models.ModuleAccess](ctx, c.client, http.MethodGet, path, nil, nil)
	if err != nil {
		c.client.log.Debug("module access check failed", zap.String("module", module), zap.Error(err))
		return false
	}
	return out.PuedeAcceder
}

// VerifyAction asks the backend whether the caller may perform action.
// Any failure answers false.
func (c *authClient) VerifyAction(ctx context.Context, action string) bool {
	in := &models.ActionCheckRequest{Accion: action}
	out, err := call[models.ActionCheck](ctx, c.client, http.MethodPost, "/auth/me/verificar-permiso", in, nil)
	if err != nil {
		c.client.log.Debug("action check failed", zap.String("action", action), zap.Error(err))
		return false
	}
	return out.TienePermiso
}

func (c *authClient) Register(ctx context.Context, in *models.RegistroUsuarioRequest) (*models.Usuario, error) {
	out, err := call[models.Usuario](ctx, c.client, http.MethodPost, "/auth/registro", in, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *authClient) ListUsers(ctx context.Context, skip, limit int) ([]models.Usuario, error) {
	if limit <= 0 {
		limit = DefaultUserPageSize
	}
	path := "/auth/usuarios" + BuildQuery(P("skip", skip), P("limit", limit))
	return callList[models.Usuario](ctx, c.client, http.MethodGet, path)
}

func (c *authClient) GetUser(ctx context.Context, id int) (*models.Usuario, error) {
	out, err := call[models.Usuario](ctx, c.client, http.MethodGet, fmt.Sprintf("/auth/usuarios/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *authClient) UpdateUser(ctx context.Context, id int, in *models.UsuarioUpdate) (*models.Usuario, error) {
	out, err := call[models.Usuario](ctx, c.client, http.MethodPut, fmt.Sprintf("/auth/usuarios/%d", id), in, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deactivates the user; the backend keeps the record.
func (c *authClient) DeleteUser(ctx context.Context, id int) error {
	_, err := exec(ctx, c.client, http.MethodDelete, fmt.Sprintf("/auth/usuarios/%d", id), nil, nil)
	return err
}

func (c *authClient) ListRoles(ctx context.Context, skip, limit int) ([]models.Rol, error) {
	if limit <= 0 {
		limit = DefaultUserPageSize
	}
	path := "/auth/roles" + BuildQuery(P("skip", skip), P("limit", limit))
	return callList[models.Rol](ctx, c.client, http.MethodGet, path)
}

func (c *authClient) ListPermissions(ctx context.Context, skip, limit int, module string) ([]models.Permiso, error) {
	if limit <= 0 {
		limit = DefaultPermissionPageSize
	}
	path := "/auth/permisos" + BuildQuery(P("skip", skip), P("limit", limit), P("modulo", module))
	return callList[models.Permiso](ctx, c.client, http.MethodGet, path)
}

func (c *authClient) AssignRole(ctx context.Context, userID, roleID int) error {
	path := fmt.Sprintf("/auth/usuarios/%d/roles/%d", userID, roleID)
	_, err := exec(ctx, c.client, http.MethodPost, path, nil, nil)
	return err
}

func (c *authClient) AssignPermissionsToRole(ctx context.Context, roleID int, permissionIDs []int) error {
	if permissionIDs == nil {
		permissionIDs = []int{}
	}
	path := fmt.Sprintf("/auth/roles/%d/permisos", roleID)
	_, err := exec(ctx, c.client, http.MethodPost, path, permissionIDs, nil)
	return err
}
