package session

import "slices"

func (s *Store) detailed() (perms []string, byModule map[string][]string, modules, actions []string, admin bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil, nil, nil, false
	}
	perms = s.user.Permisos
	if p := s.user.Permissions; p != nil {
		return perms, p.PermisosPorModulo, p.ModulosAccesibles, p.AccionesDisponibles, p.EsAdministrador
	}
	return perms, nil, nil, nil, false
}

func (s *Store) IsAdministrator() bool {
	_, _, _, _, admin := s.detailed()
	return admin
}

// HasPermission checks the basic permission list from login or /auth/me.
func (s *Store) HasPermission(permission string) bool {
	perms, _, _, _, _ := s.detailed()
	return slices.Contains(perms, permission)
}

func (s *Store) CanAccessModule(module string) bool {
	_, _, modules, _, admin := s.detailed()
	return admin || slices.Contains(modules, module)
}

func (s *Store) CanPerformAction(action string) bool {
	_, _, _, actions, admin := s.detailed()
	return admin || slices.Contains(actions, action)
}

// ModulePermissions lists the permissions held on module, never nil.
func (s *Store) ModulePermissions(module string) []string {
	_, byModule, _, _, _ := s.detailed()
	if p, ok := byModule[module]; ok {
		return slices.Clone(p)
	}
	return []string{}
}

func (s *Store) HasModulePermission(module, permission string) bool {
	if s.IsAdministrator() {
		return true
	}
	return slices.Contains(s.ModulePermissions(module), permission)
}

// MenuModules returns the menu entries the user may open, in menu order.
func (s *Store) MenuModules() []MenuModule {
	out := make([]MenuModule, 0, len(menu))
	for _, m := range menu {
		if s.CanAccessModule(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
