package stores

import (
	"context"
	"sync"

	"abyos-admin/internal/client/notify"
	"abyos-admin/internal/client/services"
	"abyos-admin/internal/user"
)

// AuthStore holds the session user state. All actions swallow failures into
// the notifier and return a sentinel, so callers never need error handling.
type AuthStore struct {
	mu       sync.Mutex
	svc      *services.AuthService
	notifier notify.Notifier

	user    *user.Snapshot
	loading bool
}

func NewAuthStore(svc *services.AuthService, notifier notify.Notifier) *AuthStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &AuthStore{svc: svc, notifier: notifier}
}

func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Login(ctx, services.LoginRequest{Email: email, Password: password})
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Login failed")
		return false
	}
	s.refreshUser(ctx)
	reportSuccess(s.notifier, env, "Logged in")
	return true
}

// FetchUser re-syncs the session user from the server. Returns nil when
// logged out.
func (s *AuthStore) FetchUser(ctx context.Context) *user.Snapshot {
	s.setLoading(true)
	defer s.setLoading(false)
	return s.refreshUser(ctx)
}

func (s *AuthStore) Logout(ctx context.Context) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Logout(ctx)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Logout failed")
		return false
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	reportSuccess(s.notifier, env, "Logged out")
	return true
}

func (s *AuthStore) CurrentUser() *user.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *AuthStore) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) refreshUser(ctx context.Context) *user.Snapshot {
	env, err := s.svc.User(ctx)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to fetch user")
		return nil
	}
	var snap *user.Snapshot
	if err := env.DecodeData(&snap); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.user = snap
	s.mu.Unlock()
	return snap
}

func (s *AuthStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
