package services

import (
	"context"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetRequestRequest struct {
	Email string `json:"email"`
}

type ResetPerformRequest struct {
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// AuthService wraps the /api/auth endpoints.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Envelope, error) {
	return s.client.Post(ctx, "/api/auth/login", req)
}

func (s *AuthService) Logout(ctx context.Context) (*Envelope, error) {
	return s.client.Post(ctx, "/api/auth/logout", nil)
}

// User fetches the current session user; data is null when logged out.
func (s *AuthService) User(ctx context.Context) (*Envelope, error) {
	return s.client.Get(ctx, "/api/auth/user")
}

func (s *AuthService) RequestReset(ctx context.Context, req ResetRequestRequest) (*Envelope, error) {
	return s.client.Post(ctx, "/api/auth/reset/request", req)
}

func (s *AuthService) PerformReset(ctx context.Context, req ResetPerformRequest) (*Envelope, error) {
	return s.client.Post(ctx, "/api/auth/reset/perform", req)
}
