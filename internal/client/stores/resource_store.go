package stores

import (
	"context"
	"sync"

	"abyos-admin/internal/client/notify"
	"abyos-admin/internal/client/services"
	"abyos-admin/internal/resource"
	"abyos-admin/internal/user"
)

// ResourceStore holds the admin resource-management state, including the
// assigned-users list for the active resource.
type ResourceStore struct {
	mu       sync.Mutex
	svc      *services.ResourceService
	notifier notify.Notifier

	resources []resource.Resource
	active    *resource.Resource
	assigned  []user.User
	loading   bool
}

func NewResourceStore(svc *services.ResourceService, notifier notify.Notifier) *ResourceStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &ResourceStore{svc: svc, notifier: notifier}
}

func (s *ResourceStore) List(ctx context.Context, opts services.ListOptions) []resource.Resource {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.List(ctx, opts)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to list resources")
		return nil
	}
	var resources []resource.Resource
	if err := env.DecodeData(&resources); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.resources = resources
	s.mu.Unlock()
	return resources
}

func (s *ResourceStore) Create(ctx context.Context, req services.CreateResourceRequest) *resource.Resource {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Create(ctx, req)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to create resource")
		return nil
	}
	var created resource.Resource
	if err := env.DecodeData(&created); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.resources = append(s.resources, created)
	s.mu.Unlock()
	reportSuccess(s.notifier, env, "Resource created")
	return &created
}

func (s *ResourceStore) View(ctx context.Context, id uint) *resource.Resource {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.View(ctx, id)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to load resource")
		return nil
	}
	var r resource.Resource
	if err := env.DecodeData(&r); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.active = &r
	s.mu.Unlock()
	return &r
}

func (s *ResourceStore) Update(ctx context.Context, id uint, req services.UpdateResourceRequest) *resource.Resource {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Update(ctx, id, req)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to update resource")
		return nil
	}
	var updated resource.Resource
	if err := env.DecodeData(&updated); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}

	s.mu.Lock()
	for i := range s.resources {
		if s.resources[i].ID == updated.ID {
			s.resources[i] = updated
		}
	}
	if s.active != nil && s.active.ID == updated.ID {
		s.active = &updated
	}
	s.mu.Unlock()

	reportSuccess(s.notifier, env, "Resource updated")
	return &updated
}

func (s *ResourceStore) Destroy(ctx context.Context, id uint) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Destroy(ctx, id)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to delete resource")
		return false
	}

	s.mu.Lock()
	kept := s.resources[:0]
	for _, r := range s.resources {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.resources = kept
	if s.active != nil && s.active.ID == id {
		s.active = nil
		s.assigned = nil
	}
	s.mu.Unlock()

	reportSuccess(s.notifier, env, "Resource deleted")
	return true
}

func (s *ResourceStore) Assign(ctx context.Context, resourceID, userID uint) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Assign(ctx, resourceID, userID)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to assign user")
		return false
	}
	reportSuccess(s.notifier, env, "User assigned to resource")
	s.refreshAssigned(ctx, resourceID)
	return true
}

func (s *ResourceStore) Unassign(ctx context.Context, resourceID, userID uint) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.svc.Unassign(ctx, resourceID, userID)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to unassign user")
		return false
	}
	reportSuccess(s.notifier, env, "User unassigned from resource")
	s.refreshAssigned(ctx, resourceID)
	return true
}

// Users fetches the assigned-user list for a resource.
func (s *ResourceStore) Users(ctx context.Context, resourceID uint) []user.User {
	s.setLoading(true)
	defer s.setLoading(false)
	return s.refreshAssigned(ctx, resourceID)
}

func (s *ResourceStore) Resources() []resource.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources
}

func (s *ResourceStore) Active() *resource.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *ResourceStore) Assigned() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assigned
}

func (s *ResourceStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ResourceStore) refreshAssigned(ctx context.Context, resourceID uint) []user.User {
	env, err := s.svc.Users(ctx, resourceID)
	if err != nil || !env.Success {
		reportFailure(s.notifier, env, err, "Failed to list assigned users")
		return nil
	}
	var users []user.User
	if err := env.DecodeData(&users); err != nil {
		s.notifier.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return nil
	}
	s.mu.Lock()
	s.assigned = users
	s.mu.Unlock()
	return users
}

func (s *ResourceStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
