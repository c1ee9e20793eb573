package api

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every API route returns. A failed call
// carries a message and usually a null data field.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message *string     `json:"message"`
	Code    int         `json:"code"`
}

func successResponse(data interface{}, message string, code int) Response {
	resp := Response{Success: true, Data: data, Code: code}
	if message != "" {
		resp.Message = &message
	}
	return resp
}

func errorResponse(code int, message string) Response {
	return Response{Success: false, Message: &message, Code: code}
}

// respondSuccess writes the envelope and the matching HTTP status.
func respondSuccess(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, successResponse(data, message, code))
}

// respondError writes the failure envelope and aborts the chain.
func respondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, errorResponse(code, message))
}
