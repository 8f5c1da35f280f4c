// Package session owns the authentication state of a client: the token
// pair, the logged-in user and their refresh. A Session is created
// explicitly and handed to whatever issues authenticated calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoSession is returned when an operation needs a login that is not there
	ErrNoSession = errors.New("not logged in")
	// ErrSessionExpired means both tokens have expired
	ErrSessionExpired = errors.New("session expired, log in again")
)

// Access levels carried in a user's profile
const (
	LevelAdmin  = "admin"
	LevelGestor = "gestor"
)

// Profile holds the access level and contact phone of a user
type Profile struct {
	NivelAcesso string `json:"nivel_acesso"`
	Telefone    string `json:"telefone,omitempty"`
}

// User is the account returned by the backend's "me" endpoint
type User struct {
	ID        int      `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Perfil    *Profile `json:"perfil,omitempty"`
}

// Authenticator performs the token exchanges against the backend
type Authenticator interface {
	ObtainToken(ctx context.Context, username, password string) (Tokens, error)
	RefreshToken(ctx context.Context, refresh string) (string, error)
	CurrentUser(ctx context.Context, access string) (*User, error)
}

// Session tracks tokens and the current user. Safe for concurrent use.
type Session struct {
	auth   Authenticator
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	tokens Tokens
	user   *User
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithClock replaces time.Now, for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates a session. Call Init to restore a stored login.
func New(auth Authenticator, store Store, opts ...Option) *Session {
	s := &Session{
		auth:   auth,
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the stored login. A live access token is used as is; an
// expired one is renewed with the refresh token; otherwise the store is
// cleared. Any failure clears the store and leaves the session logged out.
func (s *Session) Init(ctx context.Context) error {
	stored, err := s.store.Load()
	if err != nil {
		s.clear()
		return fmt.Errorf("failed to load session: %w", err)
	}

	now := s.now()
	switch {
	case stored.Access != "" && !Expired(stored.Access, now):
		s.logger.Debug("restoring session from access token")

	case stored.Refresh != "" && !Expired(stored.Refresh, now):
		s.logger.Debug("access token expired, refreshing")
		access, err := s.auth.RefreshToken(ctx, stored.Refresh)
		if err != nil {
			s.clear()
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		stored.Access = access
		if err := s.store.Save(stored); err != nil {
			s.clear()
			return err
		}

	default:
		s.clear()
		return nil
	}

	user, err := s.auth.CurrentUser(ctx, stored.Access)
	if err != nil {
		s.clear()
		return fmt.Errorf("failed to load current user: %w", err)
	}

	s.set(stored, user)
	s.logger.Info("session restored", zap.String("user", user.Username))
	return nil
}

// Login exchanges credentials for tokens and loads the user
func (s *Session) Login(ctx context.Context, username, password string) error {
	tokens, err := s.auth.ObtainToken(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, err := s.auth.CurrentUser(ctx, tokens.Access)
	if err != nil {
		return fmt.Errorf("failed to load current user: %w", err)
	}

	if err := s.store.Save(tokens); err != nil {
		return err
	}
	s.set(tokens, user)
	s.logger.Info("logged in", zap.String("user", user.Username))
	return nil
}

// Refresh renews the access token
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	tokens := s.tokens
	s.mu.RUnlock()

	if tokens.Refresh == "" {
		return ErrNoSession
	}
	if Expired(tokens.Refresh, s.now()) {
		s.clear()
		return ErrSessionExpired
	}

	access, err := s.auth.RefreshToken(ctx, tokens.Refresh)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	tokens.Access = access
	if err := s.store.Save(tokens); err != nil {
		return err
	}

	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	return nil
}

// Logout drops the tokens and the user
func (s *Session) Logout() error {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// Invalidate is called when the backend rejects the access token
func (s *Session) Invalidate() {
	if err := s.Logout(); err != nil {
		s.logger.Warn("failed to clear session", zap.Error(err))
	}
}

// AccessToken returns the bearer token, "" when logged out
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.Access
}

// User returns the logged-in user or nil
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is loaded
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// HasPermission checks the user's access level. Admins hold every
// permission; "gestor" is also granted to gestores.
func (s *Session) HasPermission(permission string) bool {
	u := s.User()
	if u == nil || u.Perfil == nil {
		return false
	}

	level := u.Perfil.NivelAcesso
	if level == LevelAdmin {
		return true
	}
	return permission == LevelGestor && level == LevelGestor
}

func (s *Session) set(t Tokens, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	s.user = u
}

func (s *Session) clear() {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear token store", zap.Error(err))
	}
}
