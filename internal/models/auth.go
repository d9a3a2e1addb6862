package models

type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	UsuarioID   int      `json:"usuario_id"`
	Usuario     string   `json:"usuario"`
	Nombres     string   `json:"nombres"`
	Rol         string   `json:"rol"`
	Permisos    []string `json:"permisos"`
	ExpiresIn   int64    `json:"expires_in"`
}

// TokenResponse is the payload of /auth/refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type Usuario struct {
	IDUsuario       int      `json:"id_usuario"`
	IDPersona       *int     `json:"id_persona,omitempty"`
	Usuario         string   `json:"usuario"`
	Correo          string   `json:"correo"`
	Nombres         string   `json:"nombres"`
	ApellidoPaterno string   `json:"apellido_paterno"`
	ApellidoMaterno string   `json:"apellido_materno"`
	CI              string   `json:"ci"`
	Telefono        string   `json:"telefono,omitempty"`
	Direccion       string   `json:"direccion,omitempty"`
	TipoPersona     string   `json:"tipo_persona,omitempty"`
	Roles           []Rol    `json:"roles,omitempty"`
	Permisos        []string `json:"permisos,omitempty"`
	Estado          string   `json:"estado,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// MeResponse is what /auth/me returns: the user record plus its primary role.
type MeResponse struct {
	Usuario
	Rol string `json:"rol,omitempty"`
}

type UsuarioUpdate struct {
	Correo          *string `json:"correo,omitempty"`
	Nombres         *string `json:"nombres,omitempty"`
	ApellidoPaterno *string `json:"apellido_paterno,omitempty"`
	ApellidoMaterno *string `json:"apellido_materno,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Direccion       *string `json:"direccion,omitempty"`
	Estado          *string `json:"estado,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type RegistroUsuarioRequest struct {
	CI              string `json:"ci"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Usuario         string `json:"usuario"`
	Correo          string `json:"correo"`
	Password        string `json:"password"`
	Telefono        string `json:"telefono,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	TipoPersona     string `json:"tipo_persona"`
	IDRol           int    `json:"id_rol"`
}

type Rol struct {
	IDRol       int       `json:"id_rol"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Permisos    []Permiso `json:"permisos,omitempty"`
}

type Permiso struct {
	IDPermiso   int    `json:"id_permiso"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Modulo      string `json:"modulo,omitempty"`
}

// ModulePermission pairs a permission name with the module it applies to.
type ModulePermission struct {
	Permiso string `json:"permiso"`
	Modulo  string `json:"modulo"`
}

// DetailedPermissions is the payload of /auth/me/permisos.
type DetailedPermissions struct {
	Usuario             string              `json:"usuario"`
	Permisos            []ModulePermission  `json:"permisos"`
	PermisosPorModulo   map[string][]string `json:"permisos_por_modulo"`
	ModulosAccesibles   []string            `json:"modulos_accesibles"`
	AccionesDisponibles []string            `json:"acciones_disponibles"`
	EsAdministrador     bool                `json:"es_administrador"`
	Roles               []string            `json:"roles"`
}

type ModuleAccess struct {
	Modulo       string `json:"modulo"`
	PuedeAcceder bool   `json:"puede_acceder"`
	Usuario      string `json:"usuario"`
}

type ActionCheckRequest struct {
	Accion string `json:"accion"`
}

type ActionCheck struct {
	Accion       string `json:"accion"`
	TienePermiso bool   `json:"tiene_permiso"`
	Usuario      string `json:"usuario"`
}
