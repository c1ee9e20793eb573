package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func healthHandler(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"status": "ok"}, "")
}
