package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"abyos-admin/internal/auth"
	"abyos-admin/internal/config"
	"abyos-admin/internal/notify"
	"abyos-admin/internal/repo"
)

func SetupRouter(cfg *config.Config, conn *gorm.DB, sessions auth.Store, hub *notify.Hub) *gin.Engine {
	r := gin.Default()

	users := repo.NewUserRepository(conn)
	resources := repo.NewResourceRepository(conn)
	cookieMaxAge := cfg.Server.SessionTTLMin * 60

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", auth.Gate(sessions, auth.GuestOnly), LoginHandler(users, sessions, cookieMaxAge))
			authGroup.POST("/logout", auth.Gate(sessions, auth.Authenticated), LogoutHandler(sessions))
			authGroup.GET("/user", CurrentUserHandler(users, sessions))
			authGroup.POST("/reset/request", auth.Gate(sessions, auth.GuestOnly), ResetRequestHandler(users, cfg.Server.ResetSecret))
			authGroup.POST("/reset/perform", auth.Gate(sessions, auth.GuestOnly), ResetPerformHandler(users, cfg.Server.ResetSecret))
		}

		// Admin: users
		userGroup := api.Group("/user", auth.Gate(sessions, auth.AdminOnly))
		{
			userGroup.GET("/list", ListUsersHandler(users))
			userGroup.POST("/create", CreateUserHandler(users, hub))
			userGroup.GET("/:user_id", GetUserHandler(users))
			userGroup.PATCH("/:user_id", UpdateUserHandler(users, hub))
			userGroup.DELETE("/:user_id", DeleteUserHandler(users, hub))
		}

		// Admin: resources and assignments
		resourceGroup := api.Group("/resource", auth.Gate(sessions, auth.AdminOnly))
		{
			resourceGroup.GET("/list", ListResourcesHandler(resources))
			resourceGroup.POST("/create", CreateResourceHandler(resources, hub))
			resourceGroup.GET("/:resource_id", GetResourceHandler(resources))
			resourceGroup.PATCH("/:resource_id", UpdateResourceHandler(resources, hub))
			resourceGroup.DELETE("/:resource_id", DeleteResourceHandler(resources, hub))
			resourceGroup.POST("/:resource_id/assign", AssignUserHandler(resources, hub))
			resourceGroup.DELETE("/:resource_id/assign", UnassignUserHandler(resources, hub))
			resourceGroup.GET("/:resource_id/users", ResourceUsersHandler(resources))
		}

		// Entity-change notifications
		api.GET("/ws/notifications", auth.Gate(sessions, auth.Authenticated), NotificationsHandler(hub))
	}
	return r
}
