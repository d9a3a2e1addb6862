// Package session holds the signed-in user. It persists the access token
// and profile in a storage.Store, restores them on Init and answers
// permission questions from the detailed permission set.
package session

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/brisa-edu/brisa-client/internal/apiclient"
	"github.com/brisa-edu/brisa-client/internal/logger"
	"github.com/brisa-edu/brisa-client/internal/models"
	"github.com/brisa-edu/brisa-client/internal/storage"
)

const (
	TokenKey = "brisa_auth_token"
	UserKey  = "brisa_user_data"
)

type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// User is the persisted profile of the signed-in user.
type User struct {
	UsuarioID   int                         `json:"usuario_id"`
	Usuario     string                      `json:"usuario"`
	Nombres     string                      `json:"nombres"`
	Rol         string                      `json:"rol"`
	Permisos    []string                    `json:"permisos"`
	IDPersona   *int                        `json:"id_persona,omitempty"`
	Permissions *models.DetailedPermissions `json:"permisos_detallados,omitempty"`
}

type Options struct {
	// OnExpired runs after a 401 cleared a session that held a token.
	OnExpired func()
	Logger    *zap.Logger
}

type Store struct {
	kv        storage.Store
	auth      apiclient.Auth
	log       *zap.Logger
	onExpired func()

	mu    sync.RWMutex
	state State
	user  *User
	token string
}

// New builds a store over kv and registers it as client's unauthorized
// handler. client should read its bearer token from NewTokenSource(kv).
func New(kv storage.Store, client *apiclient.Client, opts Options) *Store {
	s := &Store{
		kv:        kv,
		auth:      client.Auth,
		log:       opts.Logger,
		onExpired: opts.OnExpired,
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	client.Base.SetUnauthorizedHandler(s.handleUnauthorized)
	return s
}

// Init restores the session from the persisted token and checks it with
// the backend. It never returns the backend error; a rejected token simply
// leaves the store anonymous.
func (s *Store) Init(ctx context.Context) error {
	s.setState(Loading)

	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		s.setState(Anonymous)
		return err
	}
	if !ok || token == "" {
		s.log.Debug("no persisted token")
		s.setState(Anonymous)
		return nil
	}

	me, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Info("persisted token rejected", zap.Error(err))
		return s.clear(ctx)
	}
	if me == nil || me.Usuario.Usuario == "" {
		s.log.Info("profile response without user")
		return s.clear(ctx)
	}

	user := &User{
		UsuarioID: me.IDUsuario,
		Usuario:   me.Usuario.Usuario,
		Nombres:   me.Nombres,
		Rol:       me.Rol,
		Permisos:  me.Permisos,
		IDPersona: me.IDPersona,
	}
	if user.Rol == "" {
		user.Rol = string(models.RoleUsuario)
	}
	if user.Permisos == nil {
		user.Permisos = []string{}
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.state = Authenticated
	s.mu.Unlock()

	s.loadPermissions(ctx)
	return s.persistUser(ctx)
}

// Login exchanges credentials for a token and signs the user in. Any
// failure, including a reply without a token, logs out first.
func (s *Store) Login(ctx context.Context, usuario, password string) (*models.LoginResponse, error) {
	resp, err := s.auth.Login(ctx, &models.LoginRequest{Usuario: usuario, Password: password})
	if err == nil && resp.AccessToken == "" {
		err = ErrInvalidLogin
	}
	if err != nil {
		_ = s.Logout(ctx)
		return nil, err
	}
	if err := s.kv.Set(ctx, TokenKey, resp.AccessToken); err != nil {
		_ = s.clear(ctx)
		return nil, err
	}

	permisos := resp.Permisos
	if permisos == nil {
		permisos = []string{}
	}
	s.mu.Lock()
	s.user = &User{
		UsuarioID: resp.UsuarioID,
		Usuario:   resp.Usuario,
		Nombres:   resp.Nombres,
		Rol:       resp.Rol,
		Permisos:  permisos,
	}
	s.token = resp.AccessToken
	s.state = Authenticated
	s.mu.Unlock()
	s.log.Info("logged in", zap.String("usuario", resp.Usuario), zap.String("rol", resp.Rol))

	s.loadPermissions(ctx)
	if err := s.persistUser(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout tells the backend when a token is held, ignoring its answer, and
// always clears the persisted keys and the in-memory session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		token, _, _ = s.kv.Get(ctx, TokenKey)
	}
	if token != "" {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Warn("server logout failed", zap.Error(err))
		}
	}
	return s.clear(ctx)
}

// Refresh swaps the access token for a new one. A failed request logs the
// user out; a response without a token returns ErrNoToken and keeps the
// session.
func (s *Store) Refresh(ctx context.Context) error {
	resp, err := s.auth.Refresh(ctx)
	if err != nil {
		s.log.Warn("token refresh failed", zap.Error(err))
		_ = s.Logout(ctx)
		return err
	}
	if resp.AccessToken == "" {
		return ErrNoToken
	}
	if err := s.kv.Set(ctx, TokenKey, resp.AccessToken); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = resp.AccessToken
	s.mu.Unlock()
	return nil
}

// LoadPermissions fetches the detailed permission set and attaches it to
// the current user.
func (s *Store) LoadPermissions(ctx context.Context) error {
	perms, err := s.auth.MyPermissions(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user.Permissions = perms
	}
	return nil
}

func (s *Store) loadPermissions(ctx context.Context) {
	if err := s.LoadPermissions(ctx); err != nil {
		s.log.Warn("loading detailed permissions failed", zap.Error(err))
	}
}

func (s *Store) handleUnauthorized(ctx context.Context) {
	s.mu.RLock()
	held := s.token != ""
	s.mu.RUnlock()
	if !held {
		if t, ok, _ := s.kv.Get(ctx, TokenKey); ok && t != "" {
			held = true
		}
	}

	if err := s.clear(ctx); err != nil {
		s.log.Warn("clearing expired session", zap.Error(err))
	}
	if held && s.onExpired != nil {
		s.onExpired()
	}
}

// clear removes both persisted keys and resets the state to anonymous.
func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = Anonymous
	s.mu.Unlock()

	err1 := s.kv.Remove(ctx, TokenKey)
	err2 := s.kv.Remove(ctx, UserKey)
	if err1 != nil {
		return err1
	}
	return err2
}

func (s *Store) persistUser(ctx context.Context) error {
	s.mu.RLock()
	user := s.user
	var b []byte
	var err error
	if user != nil {
		b, err = json.Marshal(user)
	}
	s.mu.RUnlock()
	if user == nil {
		return nil
	}
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, UserKey, string(b))
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// IsLoading is true until Init or Login has settled the session.
func (s *Store) IsLoading() bool {
	st := s.State()
	return st == Uninitialized || st == Loading
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Permisos = slices.Clone(s.user.Permisos)
	return &u
}

// Role returns the current user's role, or "" when signed out. A nil
// store has no role.
func (s *Store) Role() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Rol
}

// PersonID returns the id_persona of the current user, falling back to the
// token's claims.
func (s *Store) PersonID() (int, bool) {
	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()
	if user != nil && user.IDPersona != nil {
		return *user.IDPersona, true
	}
	if token == "" {
		return 0, false
	}
	return personIDFromClaims(token)
}
