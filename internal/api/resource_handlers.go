package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"abyos-admin/internal/notify"
	"abyos-admin/internal/repo"
	"abyos-admin/internal/resource"
)

// GET /api/resource/list  [admin only]
func ListResourcesHandler(resources *repo.ResourceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, ok := parseListParams(c)
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
		list, err := resources.List(params)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to list resources")
			return
		}
		respondSuccess(c, http.StatusOK, list, "")
	}
}

type CreateResourceRequest struct {
	Name string          `json:"name" binding:"required,min=1"`
	Meta json.RawMessage `json:"meta"`
}

// POST /api/resource/create  [admin only]
func CreateResourceHandler(resources *repo.ResourceRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		res := resource.Resource{Name: req.Name, Meta: datatypes.JSON(req.Meta)}
		if err := resources.Create(&res); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				respondError(c, http.StatusConflict, "A resource with the provided unique field already exists")
				return
			}
			respondError(c, http.StatusBadRequest, "Failed to create resource")
			return
		}
		hub.Broadcast(notify.Event{Entity: "resource", Action: "created", ID: res.ID})
		respondSuccess(c, http.StatusCreated, res, "Resource created")
	}
}

// GET /api/resource/:resource_id  [admin only]
func GetResourceHandler(resources *repo.ResourceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "resource_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid resource id")
			return
		}
		res, err := resources.FindByID(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to load resource")
			return
		}
		if res == nil {
			respondError(c, http.StatusNotFound, "Resource not found")
			return
		}
		respondSuccess(c, http.StatusOK, res, "")
	}
}

type UpdateResourceRequest struct {
	Name *string         `json:"name" binding:"omitempty,min=1"`
	Meta json.RawMessage `json:"meta"`
}

// PATCH /api/resource/:resource_id  [admin only]
func UpdateResourceHandler(resources *repo.ResourceRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "resource_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid resource id")
			return
		}
		var req UpdateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Name == nil && req.Meta == nil {
			respondError(c, http.StatusBadRequest, "At least one field must be provided")
			return
		}
		updated, err := resources.Update(id, repo.UpdateResourceData{
			Name: req.Name,
			Meta: datatypes.JSON(req.Meta),
		})
		if err != nil {
			switch {
			case errors.Is(err, repo.ErrNotFound):
				respondError(c, http.StatusNotFound, "Resource not found")
			case errors.Is(err, repo.ErrDuplicate):
				respondError(c, http.StatusConflict, "A resource with the provided unique field already exists")
			default:
				respondError(c, http.StatusBadRequest, "Failed to update resource")
			}
			return
		}
		hub.Broadcast(notify.Event{Entity: "resource", Action: "updated", ID: updated.ID})
		respondSuccess(c, http.StatusOK, updated, "Resource updated")
	}
}

// DELETE /api/resource/:resource_id  [admin only]
func DeleteResourceHandler(resources *repo.ResourceRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "resource_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid resource id")
			return
		}
		deleted, err := resources.Delete(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to delete resource")
			return
		}
		if !deleted {
			respondError(c, http.StatusNotFound, "Resource not found")
			return
		}
		hub.Broadcast(notify.Event{Entity: "resource", Action: "deleted", ID: id})
		respondSuccess(c, http.StatusNoContent, nil, "")
	}
}

type AssignRequest struct {
	ResourceID uint `json:"resource_id" binding:"required"`
	UserID     uint `json:"user_id" binding:"required"`
}

// POST /api/resource/:resource_id/assign  [admin only]
func AssignUserHandler(resources *repo.ResourceRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := resources.AssignUser(req.ResourceID, req.UserID); err != nil {
			switch {
			case errors.Is(err, repo.ErrDuplicate):
				respondError(c, http.StatusConflict, "User is already assigned to this resource")
			case errors.Is(err, repo.ErrRelatedNotFound):
				respondError(c, http.StatusNotFound, "User or Resource not found")
			default:
				respondError(c, http.StatusBadRequest, "Failed to assign user to resource")
			}
			return
		}
		hub.Broadcast(notify.Event{Entity: "resource", Action: "assigned", ID: req.ResourceID})
		respondSuccess(c, http.StatusCreated, gin.H{
			"resource_id": req.ResourceID,
			"user_id":     req.UserID,
		}, "User assigned to resource")
	}
}

// DELETE /api/resource/:resource_id/assign  [admin only]
func UnassignUserHandler(resources *repo.ResourceRepository, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		removed, err := resources.UnassignUser(req.ResourceID, req.UserID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to unassign user from resource")
			return
		}
		if !removed {
			respondError(c, http.StatusNotFound, "Assignment not found")
			return
		}
		hub.Broadcast(notify.Event{Entity: "resource", Action: "unassigned", ID: req.ResourceID})
		respondSuccess(c, http.StatusOK, nil, "User unassigned from resource")
	}
}

// GET /api/resource/:resource_id/users  [admin only]
func ResourceUsersHandler(resources *repo.ResourceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "resource_id")
		if !ok {
			respondError(c, http.StatusBadRequest, "Invalid resource id")
			return
		}
		res, err := resources.FindByID(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to load resource")
			return
		}
		if res == nil {
			respondError(c, http.StatusNotFound, "Resource not found")
			return
		}
		users, err := resources.ListUsers(id)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to list assigned users")
			return
		}
		respondSuccess(c, http.StatusOK, users, "")
	}
}
