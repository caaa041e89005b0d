package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/logging"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// Role sets granted to a session.
var (
	RolesAdmin = []string{"all"}
	RolesUser  = []string{"user"}
)

// ErrNoSession is returned by Restore when there is no token to restore.
var ErrNoSession = errors.New("not logged in")

// ErrSessionExpired is returned by Restore for a token whose exp claim has passed.
var ErrSessionExpired = errors.New("session expired")

// AuthAPI is the part of the API client the session store uses.
type AuthAPI interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.LoginResult, error)
	Profile(ctx context.Context) (*types.UserProfile, error)
	SetToken(token string)
}

const sessionKey = "session"

type savedSession struct {
	Token string `json:"token"`
}

// SessionStore holds the signed-in user and their token. It installs the
// token on the API client on login and removes it on logout.
type SessionStore struct {
	api       AuthAPI
	persister persist.Persister
	log       *slog.Logger
	now       func() time.Time

	mu        sync.RWMutex
	token     string
	user      *types.UserProfile
	roles     []string
	expiresAt time.Time
}

// NewSessionStore creates a signed-out session store. persister may be nil
// when the caller keeps the token elsewhere.
func NewSessionStore(api AuthAPI, persister persist.Persister, log *slog.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionStore{
		api:       api,
		persister: persister,
		log:       log.With("store", sessionKey),
		now:       time.Now,
	}
}

// Login authenticates and installs the resulting session.
func (s *SessionStore) Login(ctx context.Context, req types.LoginRequest) (*types.UserProfile, error) {
	res, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	user := res.User
	s.set(res.Token, &user)
	s.save(res.Token)
	return &user, nil
}

// Restore reinstates a session from token, or from the persisted token
// when token is empty, and fetches the user's profile. On any failure the
// session is cleared.
func (s *SessionStore) Restore(ctx context.Context, token string) (*types.UserProfile, error) {
	if token == "" && s.persister != nil {
		var saved savedSession
		if err := s.persister.Load(sessionKey, &saved); err != nil && !errors.Is(err, persist.ErrNotFound) {
			s.log.Warn("ignoring saved session", "error", err)
		}
		token = saved.Token
	}
	if token == "" {
		return nil, ErrNoSession
	}

	if exp := tokenExpiry(token); !exp.IsZero() && !s.now().Before(exp) {
		s.log.Warn("session token expired", "expired_at", exp)
		s.Logout()
		return nil, ErrSessionExpired
	}

	s.api.SetToken(token)
	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.Logout()
		return nil, err
	}
	s.set(token, profile)
	return profile, nil
}

// Logout drops the session locally. The backend keeps no session state.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.roles = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	s.api.SetToken("")
	s.save("")
}

func (s *SessionStore) set(token string, user *types.UserProfile) {
	roles := RolesUser
	if user != nil && user.Role == types.RoleAdmin {
		roles = RolesAdmin
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.roles = append([]string(nil), roles...)
	s.expiresAt = tokenExpiry(token)
	s.mu.Unlock()

	s.api.SetToken(token)
}

func (s *SessionStore) save(token string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(sessionKey, savedSession{Token: token}); err != nil {
		s.log.Warn("failed to save session", "error", err)
	}
}

// Token returns the session token, empty when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user, nil when signed out.
func (s *SessionStore) User() *types.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Roles returns ["all"] for administrators and ["user"] otherwise; nil when signed out.
func (s *SessionStore) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles...)
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == types.RoleAdmin
}

// LoggedIn reports whether a session is installed.
func (s *SessionStore) LoggedIn() bool {
	return s.Token() != ""
}

// ExpiresAt returns the token's exp claim; zero if unknown.
func (s *SessionStore) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority. Non-JWT tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
