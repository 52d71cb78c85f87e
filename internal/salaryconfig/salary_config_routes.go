package salaryconfig

import (
	"fleetops/internal/middleware"
	"fleetops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	configs := r.Group("/salary-configs")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.GET("", middleware.RBACAuthorize(rbacService, "salaryconfig", "read"), handler.GetAll)
		configs.GET("/:id", middleware.RBACAuthorize(rbacService, "salaryconfig", "read"), handler.GetById)
		configs.POST("", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "salaryconfig", "create"), handler.Create)
		configs.PUT("/:id", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "salaryconfig", "update"), handler.Update)
		configs.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), middleware.RBACAuthorize(rbacService, "salaryconfig", "delete"), handler.Delete)
	}
}
