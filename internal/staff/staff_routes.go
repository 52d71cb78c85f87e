package staff

import (
	"fleetops/internal/middleware"
	"fleetops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	members := r.Group("/staff")
	members.Use(middleware.AuthMiddleware())
	{
		members.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetAll)
		members.GET("/options", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetOptions)
		members.GET("/:id", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetById)
		members.POST("", middleware.RBACAuthorize(rbacService, "staff", "create"), handler.Create)
		members.PUT("/:id", middleware.RBACAuthorize(rbacService, "staff", "update"), handler.Update)
		members.DELETE("/:id", middleware.RBACAuthorize(rbacService, "staff", "delete"), handler.Delete)

		members.GET("/:id/figures/:year/:month", middleware.RBACAuthorize(rbacService, "staff", "read"), handler.GetFigure)
		members.PUT("/:id/figures/:year/:month", middleware.RBACAuthorize(rbacService, "staff", "update"), handler.UpsertFigure)
	}
}
