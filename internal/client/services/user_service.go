package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListOptions maps onto the skip/take/q query parameters.
type ListOptions struct {
	Skip  int
	Take  int
	Query string
}

func (o ListOptions) encode() string {
	values := url.Values{}
	if o.Skip > 0 {
		values.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Take > 0 {
		values.Set("take", strconv.Itoa(o.Take))
	}
	if o.Query != "" {
		values.Set("q", o.Query)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin,omitempty"`
}

type UpdateUserRequest struct {
	Name               *string `json:"name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Admin              *bool   `json:"admin,omitempty"`
	OldPassword        *string `json:"old_password,omitempty"`
	NewPassword        *string `json:"new_password,omitempty"`
	NewPasswordConfirm *string `json:"new_password_confirm,omitempty"`
}

// UserService wraps the admin-only /api/user endpoints.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context, opts ListOptions) (*Envelope, error) {
	return s.client.Get(ctx, "/api/user/list"+opts.encode())
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*Envelope, error) {
	return s.client.Post(ctx, "/api/user/create", req)
}

func (s *UserService) View(ctx context.Context, id uint) (*Envelope, error) {
	return s.client.Get(ctx, fmt.Sprintf("/api/user/%d", id))
}

func (s *UserService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*Envelope, error) {
	return s.client.Patch(ctx, fmt.Sprintf("/api/user/%d", id), req)
}

func (s *UserService) Destroy(ctx context.Context, id uint) (*Envelope, error) {
	return s.client.Delete(ctx, fmt.Sprintf("/api/user/%d", id), nil)
}
