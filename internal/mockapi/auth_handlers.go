package mockapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/models"
)

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	a.mu.RLock()
	u := a.data.userByLogin(req.Usuario)
	a.mu.RUnlock()
	if u == nil || !checkPassword(u.PasswordHash, req.Password) {
		writeEnvelopeError(w, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
		return
	}
	if !u.Active {
		writeEnvelopeError(w, http.StatusForbidden, "Usuario inactivo")
		return
	}

	a.mu.RLock()
	access, err := a.generateAccessToken(u)
	resp := models.LoginResponse{
		AccessToken: access,
		TokenType:   "bearer",
		UsuarioID:   u.IDUsuario,
		Usuario:     u.Usuario.Usuario,
		Nombres:     u.Nombres,
		Rol:         a.data.primaryRole(u),
		Permisos:    a.data.basicPermissions(u),
		ExpiresIn:   int64(a.cfg.TokenTTL.Seconds()),
	}
	a.mu.RUnlock()
	if err != nil {
		writeEnvelopeError(w, http.StatusInternalServerError, "token error")
		return
	}
	a.log.Debug("mock login", zap.String("usuario", req.Usuario))
	writeEnvelope(w, http.StatusOK, "Login exitoso", resp)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.revoke(tokenFromCtx(r.Context()))
	writeEnvelope(w, http.StatusOK, "Sesión cerrada", nil)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	u := userFromCtx(r.Context())
	a.mu.RLock()
	resp := models.MeResponse{Usuario: a.data.renderUser(u), Rol: a.data.primaryRole(u)}
	a.mu.RUnlock()
	writeEnvelope(w, http.StatusOK, "", resp)
}

// refresh revokes the presented token and issues a new one.
func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	u := userFromCtx(r.Context())
	a.mu.RLock()
	access, err := a.generateAccessToken(u)
	a.mu.RUnlock()
	if err != nil {
		writeEnvelopeError(w, http.StatusInternalServerError, "token error")
		return
	}
	a.revoke(tokenFromCtx(r.Context()))
	writeEnvelope(w, http.StatusOK, "Token renovado", models.TokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.cfg.TokenTTL.Seconds()),
	})
}

func (a *API) myPermissions(w http.ResponseWriter, r *http.Request) {
	u := userFromCtx(r.Context())
	a.mu.RLock()
	dp := a.data.detailedPermissions(u)
	a.mu.RUnlock()
	writeEnvelope(w, http.StatusOK, "", dp)
}

func (a *API) canAccess(w http.ResponseWriter, r *http.Request) {
	u := userFromCtx(r.Context())
	module := chi.URLParam(r, "modulo")
	a.mu.RLock()
	dp := a.data.detailedPermissions(u)
	a.mu.RUnlock()
	writeEnvelope(w, http.StatusOK, "", models.ModuleAccess{
		Modulo:       module,
		PuedeAcceder: dp.EsAdministrador || slices.Contains(dp.ModulosAccesibles, module),
		Usuario:      dp.Usuario,
	})
}

func (a *API) verifyAction(w http.ResponseWriter, r *http.Request) {
	var req models.ActionCheckRequest
	if !decode(w, r, &req) {
		return
	}
	u := userFromCtx(r.Context())
	a.mu.RLock()
	dp := a.data.detailedPermissions(u)
	a.mu.RUnlock()
	writeEnvelope(w, http.StatusOK, "", models.ActionCheck{
		Accion:       req.Accion,
		TienePermiso: dp.EsAdministrador || slices.Contains(dp.AccionesDisponibles, req.Accion),
		Usuario:      dp.Usuario,
	})
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistroUsuarioRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Usuario == "" || req.Password == "" {
		writeEnvelopeError(w, http.StatusUnprocessableEntity, "usuario y password son requeridos")
		return
	}
	hash, err := HashPassword(req.Password, a.cfg.BcryptCost)
	if err != nil {
		writeEnvelopeError(w, http.StatusInternalServerError, "hash error")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data.userByLogin(req.Usuario) != nil {
		writeEnvelopeError(w, http.StatusConflict, "El usuario ya existe")
		return
	}
	roleID := req.IDRol
	if _, ok := a.data.roles[roleID]; !ok {
		roleID = 4
	}
	id := a.data.newID()
	u := &user{
		Usuario: models.Usuario{
			IDUsuario:       id,
			IDPersona:       ptr(a.data.newID()),
			Usuario:         req.Usuario,
			Correo:          req.Correo,
			Nombres:         req.Nombres,
			ApellidoPaterno: req.ApellidoPaterno,
			ApellidoMaterno: req.ApellidoMaterno,
			CI:              req.CI,
			Telefono:        req.Telefono,
			Direccion:       req.Direccion,
			TipoPersona:     req.TipoPersona,
			Estado:          "activo",
		},
		PasswordHash: hash,
		RoleIDs:      []int{roleID},
		Active:       true,
	}
	a.data.users[id] = u
	writeEnvelope(w, http.StatusCreated, "Usuario registrado", a.data.renderUser(u))
}

// page applies skip/limit to n items and returns the bounds.
func page(r *http.Request, n, defLimit int) (int, int) {
	skip := deref(queryInt(r, "skip"))
	limit := defLimit
	if l := queryInt(r, "limit"); l != nil && *l > 0 {
		limit = *l
	}
	if skip < 0 {
		skip = 0
	}
	if skip > n {
		skip = n
	}
	end := min(skip+limit, n)
	return skip, end
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	all := sorted(a.data.users)
	from, to := page(r, len(all), 50)
	out := make([]models.Usuario, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, a.data.renderUser(&all[i]))
	}
	writeEnvelope(w, http.StatusOK, "", out)
}

func (a *API) lookupUser(w http.ResponseWriter, r *http.Request) *user {
	id, ok := urlInt(w, r, "id")
	if !ok {
		return nil
	}
	u, found := a.data.users[id]
	if !found {
		writeEnvelopeError(w, http.StatusNotFound, "Usuario no encontrado")
		return nil
	}
	return u
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if u := a.lookupUser(w, r); u != nil {
		writeEnvelope(w, http.StatusOK, "", a.data.renderUser(u))
	}
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UsuarioUpdate
	if !decode(w, r, &req) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	u := a.lookupUser(w, r)
	if u == nil {
		return
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Correo, req.Correo)
	set(&u.Nombres, req.Nombres)
	set(&u.ApellidoPaterno, req.ApellidoPaterno)
	set(&u.ApellidoMaterno, req.ApellidoMaterno)
	set(&u.Telefono, req.Telefono)
	set(&u.Direccion, req.Direccion)
	set(&u.Estado, req.Estado)
	if req.IsActive != nil {
		u.Active = *req.IsActive
	}
	writeEnvelope(w, http.StatusOK, "Usuario actualizado", a.data.renderUser(u))
}

// deleteUser deactivates the account; the record stays.
func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := a.lookupUser(w, r)
	if u == nil {
		return
	}
	u.Active = false
	u.Estado = "inactivo"
	writeEnvelope(w, http.StatusOK, "Usuario desactivado", nil)
}

func (a *API) assignRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.Atoi(chi.URLParam(r, "rol"))
	if err != nil {
		writeEnvelopeError(w, http.StatusUnprocessableEntity, "rol must be an integer")
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	u := a.lookupUser(w, r)
	if u == nil {
		return
	}
	if _, ok := a.data.roles[roleID]; !ok {
		writeEnvelopeError(w, http.StatusNotFound, "Rol no encontrado")
		return
	}
	switch {
	case slices.Equal(u.RoleIDs, []int{4}):
		// the default Usuario role gives way to the first real one
		u.RoleIDs = []int{roleID}
	case !slices.Contains(u.RoleIDs, roleID):
		u.RoleIDs = append(u.RoleIDs, roleID)
	}
	writeEnvelope(w, http.StatusOK, "Rol asignado", nil)
}

func (a *API) listRoles(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	all := sorted(a.data.roles)
	from, to := page(r, len(all), 50)
	out := make([]models.Rol, 0, to-from)
	for _, role := range all[from:to] {
		role.Permisos = []models.Permiso{}
		for _, pid := range a.data.rolePerms[role.IDRol] {
			role.Permisos = append(role.Permisos, *a.data.permisos[pid])
		}
		out = append(out, role)
	}
	writeEnvelope(w, http.StatusOK, "", out)
}

func (a *API) assignPermissions(w http.ResponseWriter, r *http.Request) {
	var ids []int
	if !decode(w, r, &ids) {
		return
	}
	roleID, ok := urlInt(w, r, "id")
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.data.roles[roleID]; !ok {
		writeEnvelopeError(w, http.StatusNotFound, "Rol no encontrado")
		return
	}
	for _, id := range ids {
		if _, ok := a.data.permisos[id]; !ok {
			writeEnvelopeError(w, http.StatusNotFound, "Permiso no encontrado: "+strconv.Itoa(id))
			return
		}
	}
	for _, id := range ids {
		if !slices.Contains(a.data.rolePerms[roleID], id) {
			a.data.rolePerms[roleID] = append(a.data.rolePerms[roleID], id)
		}
	}
	slices.Sort(a.data.rolePerms[roleID])
	writeEnvelope(w, http.StatusOK, "Permisos asignados", nil)
}

func (a *API) listPermissions(w http.ResponseWriter, r *http.Request) {
	module := strings.TrimSpace(r.URL.Query().Get("modulo"))
	a.mu.RLock()
	defer a.mu.RUnlock()
	var all []models.Permiso
	for _, p := range sorted(a.data.permisos) {
		if module == "" || p.Modulo == module {
			all = append(all, p)
		}
	}
	from, to := page(r, len(all), 100)
	out := append([]models.Permiso{}, all[from:to]...)
	writeEnvelope(w, http.StatusOK, "", out)
}
