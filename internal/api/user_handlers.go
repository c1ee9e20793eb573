package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"abyos-admin/internal/notify"
	"abyos-admin/internal/repo"
	"abyos-admin/internal/user"
)

// parseIDParam parses a positive integer route parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseListParams reads skip/take/q query parameters. Absent take falls back
// to the repository default; out-of-range values are clamped there.
func parseListParams(c *gin.Context) (repo.ListParams, bool) {
	params := repo.DefaultListParams()
	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return params, false
		}
		params.Skip = skip
	}
	if raw := c.Query("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			return params, false
		}
		params.Take = take
	}
	params.Query = strings.TrimSpace(c.Query("q"))
	return params, true
}

// GET /api/user/list  [admin only]
func ListUsersHandler(users *repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := parseListParams(c)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
		list, err := users.List(params)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to list users")
			return
		}
		respondSuccess(c, http.StatusOK, list, "")
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Admin    bool   `json:"admin"`
}

// POST /api/user/create  [admin only]
func CreateUserHandler(users *repo.UserRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		hashed, err := user.HashPassword(req.Password)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to create user")
			return
		}
		newUser := user.User{
			Name:     req.Name,
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			Password: hashed,
			Admin:    req.Admin,
		}
		if err := users.Create(&newUser); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				respondError(c, http.StatusConflict, "A user with the provided unique field already exists")
				return
			}
			respondError(c, http.StatusBadRequest, "Failed to create user")
			return
		}
		hub.Broadcast(notify.Event{Entity: "user", Action: "created", ID: newUser.ID})
		respondSuccess(c, http.StatusCreated, newUser, "User created")
	}
}

// GET /api/user/:user_id  [admin only]
func GetUserHandler(users *repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "user_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		u, err := users.FindByID(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to load user")
			return
		}
		if u == nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondSuccess(c, http.StatusOK, u, "")
	}
}

type UpdateUserRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Admin              *bool   `json:"admin"`
	OldPassword        *string `json:"old_password" binding:"omitempty,min=8"`
	NewPassword        *string `json:"new_password" binding:"omitempty,min=8"`
	NewPasswordConfirm *string `json:"new_password_confirm" binding:"omitempty,min=8"`
}

func (r *UpdateUserRequest) empty() bool {
	return r.Name == nil && r.Email == nil && r.Admin == nil &&
		r.OldPassword == nil && r.NewPassword == nil && r.NewPasswordConfirm == nil
}

func (r *UpdateUserRequest) wantsPasswordChange() bool {
	return r.OldPassword != nil || r.NewPassword != nil || r.NewPasswordConfirm != nil
}

// PATCH /api/user/:user_id  [admin only]
func UpdateUserHandler(users *repo.UserRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "user_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.empty() {
			respondError(c, http.StatusBadRequest, "At least one field must be provided")
			return
		}

		data := repo.UpdateUserData{Name: req.Name, Admin: req.Admin}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			data.Email = &email
		}

		// A password change requires the full trio, a matching confirmation
		// and proof of the old password. The transient fields never persist.
		if req.wantsPasswordChange() {
			if req.OldPassword == nil || req.NewPassword == nil || req.NewPasswordConfirm == nil {
				respondError(c, http.StatusBadRequest,
					"All password fields (old_password, new_password, new_password_confirm) are required")
				return
			}
			if *req.NewPassword != *req.NewPasswordConfirm {
				respondError(c, http.StatusBadRequest, "New passwords do not match")
				return
			}
			existing, err := users.FindByID(id)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Failed to update user")
				return
			}
			if existing == nil {
				respondError(c, http.StatusNotFound, "User not found")
				return
			}
			if user.CheckPassword(existing.Password, *req.OldPassword) != nil {
				respondError(c, http.StatusUnauthorized, "Invalid password")
				return
			}
			hashed, err := user.HashPassword(*req.NewPassword)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Failed to update user")
				return
			}
			data.Password = &hashed
		}

		updated, err := users.Update(id, data)
		if err != nil {
			switch {
			case errors.Is(err, repo.ErrNotFound):
				respondError(c, http.StatusNotFound, "User not found")
			case errors.Is(err, repo.ErrDuplicate):
				respondError(c, http.StatusConflict, "A user with the provided unique field already exists")
			default:
				respondError(c, http.StatusBadRequest, "Failed to update user")
			}
			return
		}
		hub.Broadcast(notify.Event{Entity: "user", Action: "updated", ID: updated.ID})
		respondSuccess(c, http.StatusOK, updated, "User updated")
	}
}

// DELETE /api/user/:user_id  [admin only]
func DeleteUserHandler(users *repo.UserRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "user_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		deleted, err := users.Delete(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to delete user")
			return
		}
		if !deleted {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		hub.Broadcast(notify.Event{Entity: "user", Action: "deleted", ID: id})
		respondSuccess(c, http.StatusNoContent, nil, "")
	}
}
