package rbac

import (
	"fleetops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService Service) {
	roles := r.Group("/rbac")
	roles.Use(middleware.AuthMiddleware())
	{
		roles.GET("/roles", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.ListRoles)
		roles.GET("/permissions", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.ListPermissions)
		roles.GET("/roles/:id/permissions", middleware.RBACAuthorize(rbacService, "rbac", "read"), handler.GetRolePermissions)
		roles.PUT("/roles/:id/permissions", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.UpdateRolePermissions)
	}
}
