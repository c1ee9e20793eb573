package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"abyos-admin/internal/user"
)

// Policy selects what the gate demands from the request's session.
type Policy int

const (
	// Authenticated requires a session with a user.
	Authenticated Policy = iota
	// AdminOnly additionally requires the role flag.
	AdminOnly
	// GuestOnly rejects requests that already carry a session (login page).
	GuestOnly
)

// Context keys set by the gate on success.
const (
	ContextUserKey  = "sessionUser"
	ContextTokenKey = "sessionToken"
)

// ResolveSession reads the session cookie and looks the token up in the
// store. ErrNoSession covers both a missing cookie and a dead token.
func ResolveSession(c *gin.Context, store Store) (user.Snapshot, string, error) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return user.Snapshot{}, "", ErrNoSession
	}
	snap, err := store.Get(c.Request.Context(), token)
	if err != nil {
		return user.Snapshot{}, "", err
	}
	return snap, token, nil
}

// Gate enforces a session policy before the matched handler runs. On failure
// it writes the response envelope and terminates the chain; on success it
// attaches the session snapshot to the context and falls through.
func Gate(store Store, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Pre-flight requests pass through unchecked.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		snap, token, err := ResolveSession(c, store)

		if policy == GuestOnly {
			if err == nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"success": false, "data": nil, "message": "Only unauthenticated", "code": http.StatusBadRequest,
				})
				return
			}
			c.Next()
			return
		}

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "data": nil, "message": "Unauthenticated", "code": http.StatusUnauthorized,
			})
			return
		}
		if policy == AdminOnly && !snap.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "data": nil, "message": "Admin only", "code": http.StatusForbidden,
			})
			return
		}
		c.Set(ContextUserKey, snap)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// SessionUser returns the snapshot the gate attached, if any.
func SessionUser(c *gin.Context) (user.Snapshot, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return user.Snapshot{}, false
	}
	snap, ok := v.(user.Snapshot)
	return snap, ok
}
