package services

import (
	"context"
	"encoding/json"
	"fmt"
)

type CreateResourceRequest struct {
	Name string          `json:"name"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

type UpdateResourceRequest struct {
	Name *string         `json:"name,omitempty"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

type AssignRequest struct {
	ResourceID uint `json:"resource_id"`
	UserID     uint `json:"user_id"`
}

// ResourceService wraps the admin-only /api/resource endpoints.
type ResourceService struct {
	client *Client
}

func NewResourceService(client *Client) *ResourceService {
	return &ResourceService{client: client}
}

func (s *ResourceService) List(ctx context.Context, opts ListOptions) (*Envelope, error) {
	return s.client.Get(ctx, "/api/resource/list"+opts.encode())
}

func (s *ResourceService) Create(ctx context.Context, req CreateResourceRequest) (*Envelope, error) {
	return s.client.Post(ctx, "/api/resource/create", req)
}

func (s *ResourceService) View(ctx context.Context, id uint) (*Envelope, error) {
	return s.client.Get(ctx, fmt.Sprintf("/api/resource/%d", id))
}

func (s *ResourceService) Update(ctx context.Context, id uint, req UpdateResourceRequest) (*Envelope, error) {
	return s.client.Patch(ctx, fmt.Sprintf("/api/resource/%d", id), req)
}

func (s *ResourceService) Destroy(ctx context.Context, id uint) (*Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/api/resource/%d", id), nil)
}

func (s *ResourceService) Assign(ctx context.Context, resourceID, userID uint) (*Envelope, error) {
	return s.client.Post(ctx, fmt.Sprintf("/api/resource/%d/assign", resourceID),
		AssignRequest{ResourceID: resourceID, UserID: userID})
}

func (s *ResourceService) Unassign(ctx context.Context, resourceID, userID uint) (*Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/api/resource/%d/assign", resourceID),
		AssignRequest{ResourceID: resourceID, UserID: userID})
}

func (s *ResourceService) Users(ctx context.Context, resourceID uint) (*Envelope, error) {
	return s.client.Get(ctx, fmt.Sprintf("/api/resource/%d/users", resourceID))
}
