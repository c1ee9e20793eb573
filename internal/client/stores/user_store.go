package stores

import (
	"context"
	"sync"

	"abyos-admin/internal/client/notify"
	"abyos-admin/internal/client/services"
	"abyos-admin/internal/user"
)

// UserStore holds the admin user-management list state. When a mutation hits
// the currently logged-in user it re-syncs the auth store.
type UserStore struct {
	mu       sync.Mutex
	svc      *services.UserService
	auth     *AuthStore
	notifier notify.Notifier

	users   []user.User
	active  *user.User
	loading bool
}

func NewUserStore(svc *services.UserService, auth *AuthStore, notifier notify.Notifier) *UserStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &UserStore{svc: svc, auth: auth, notifier: notifier}
}

func (s *UserStore) List(ctx context.Context, opts services.ListOptions) []user.User {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.List(ctx, opts)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to list users")
		return nil
	}
	var users []user.User
	if err := env.DecodeData(&users); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return users
}

func (s *UserStore) Create(ctx context.Context, req services.CreateUserRequest) *user.User {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Create(ctx, req)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to create user")
		return nil
	}
	var created user.User
	if err := env.DecodeData(&created); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.users = append(s.users, created)
	s.mu.Unlock()
	reportSuccess(s.notifier, env, "User created")
	return &created
}

func (s *UserStore) View(ctx context.Context, id uint) *user.User {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.View(ctx, id)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to load user")
		return nil
	}
	var u user.User
	if err := env.DecodeData(&u); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.active = &u
	s.mu.Unlock()
	return &u
}

func (s *UserStore) Update(ctx context.Context, id uint, req services.UpdateUserRequest) *user.User {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Update(ctx, id, req)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to update user")
		return nil
	}
	var updated user.User
	if err := env.DecodeData(&updated); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == updated.ID {
			s.users[i] = updated
		}
	}
	if s.active != nil && s.active.ID == updated.ID {
		s.active = &updated
	}
	s.mu.Unlock()

	s.resyncAuth(ctx, updated.ID)
	reportSuccess(s.notifier, env, "User updated")
	return &updated
}

func (s *UserStore) Destroy(ctx context.Context, id uint) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Destroy(ctx, id)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to delete user")
		return false
	}

	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	if s.active != nil && s.active.ID == id {
		s.active = nil
	}
	s.mu.Unlock()

	s.resyncAuth(ctx, id)
	reportSuccess(s.notifier, env, "User deleted")
	return true
}

func (s *UserStore) Users() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

func (s *UserStore) Active() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// resyncAuth refreshes the auth store when the mutation touched the session
// user.
func (s *UserStore) resyncAuth(ctx context.Context, id uint) {
	if s.auth == nil {
		return
	}
	current := s.auth.CurrentUser()
	if current != nil && current.ID == id {
		s.auth.FetchUser(ctx)
	}
}

func (s *UserStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
