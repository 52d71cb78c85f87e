package pettycash

import (
	"fleetops/internal/middleware"
	"fleetops/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	entries := r.Group("/petty-cash")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.RBACAuthorize(rbacService, "pettycash", "read"), handler.GetAll)
		entries.GET("/:id", middleware.RBACAuthorize(rbacService, "pettycash", "read"), handler.GetById)
		if redisClient != nil {
			entries.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "pettycash", "create"),
				handler.Create,
			)
		} else {
			entries.POST("", middleware.RBACAuthorize(rbacService, "pettycash", "create"), handler.Create)
		}
		entries.PUT("/:id", middleware.RBACAuthorize(rbacService, "pettycash", "update"), handler.Update)
		entries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "pettycash", "delete"), handler.Delete)
	}
}
