package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"abyos-admin/internal/auth"
	"abyos-admin/internal/repo"
	"abyos-admin/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /api/auth/login  [guest only]
func LoginHandler(users *repo.UserRepository, sessions auth.Store, cookieMaxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		u, err := users.FindByEmail(email)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to log in")
			return
		}
		// Same answer for unknown email and wrong password.
		if u == nil || user.CheckPassword(u.Password, req.Password) != nil {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := sessions.Create(c.Request.Context(), u.Snapshot())
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to establish session")
			return
		}
		setSessionCookie(c, token, cookieMaxAge)
		respondSuccess(c, http.StatusOK, "Logged in successfully", "")
	}
}

// POST /api/auth/logout  [authenticated]
func LogoutHandler(sessions auth.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := c.Get(auth.ContextTokenKey); ok {
			_ = sessions.Delete(c.Request.Context(), token.(string))
		}
		setSessionCookie(c, "", -1)
		respondSuccess(c, http.StatusOK, "Logged out successfully", "")
	}
}

// GET /api/auth/user  [public]
//
// A missing session is not an error here; the client gets null data and
// decides what to do. A live session is re-synced from persistence.
func CurrentUserHandler(users *repo.UserRepository, sessions auth.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

		snap, token, err := auth.ResolveSession(c, sessions)
		if err != nil {
			respondSuccess(c, http.StatusOK, nil, "")
			return
		}

		fresh, err := users.FindByID(snap.ID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to load user")
			return
		}
		// The user behind the session is gone; drop the session.
		if fresh == nil {
			_ = sessions.Delete(c.Request.Context(), token)
			setSessionCookie(c, "", -1)
			respondSuccess(c, http.StatusOK, nil, "")
			return
		}

		refreshed := fresh.Snapshot()
		_ = sessions.Update(c.Request.Context(), token, refreshed)
		respondSuccess(c, http.StatusOK, refreshed, "")
	}
}

type ResetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/auth/reset/request  [guest only]
//
// Always answers success so callers cannot probe which emails exist.
func ResetRequestHandler(users *repo.UserRepository, resetSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetRequestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		u, err := users.FindByEmail(email)
		if err == nil && u != nil {
			token, tokenErr := auth.GenerateResetToken(resetSecret, u.ID, u.Email)
			if tokenErr == nil {
				// Stands in for mail delivery.
				log.Printf("Reset token for user %d issued: %s", u.ID, token)
			}
		}
		respondSuccess(c, http.StatusOK, "If the account exists, a reset link has been sent", "")
	}
}

type ResetPerformRequest struct {
	Token                string `json:"token" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,min=8"`
}

// POST /api/auth/reset/perform  [guest only]
func ResetPerformHandler(users *repo.UserRepository, resetSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPerformRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Password != req.PasswordConfirmation {
			respondError(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		claims, err := auth.ParseResetToken(resetSecret, req.Token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		hashed, err := user.HashPassword(req.Password)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to reset password")
			return
		}
		if _, err := users.Update(claims.UserID, repo.UpdateUserData{Password: &hashed}); err != nil {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondSuccess(c, http.StatusOK, "Password has been reset", "")
	}
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", false, true)
}
