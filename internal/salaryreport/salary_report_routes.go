package salaryreport

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

	reports := r.Group("/reports/salary")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET(
			"/:year",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salaryreport", "read"),
			handler.GetYearly,
		)
		reports.GET(
			"/:year/:month",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salaryreport", "read"),
			handler.GetMonthly,
		)
	}

	exports := r.Group("/reports/exports")
	exports.Use(middleware.AuthMiddleware())
	{
		exports.GET("", middleware.RBACAuthorize(rbacService, "salaryreport", "read"), handler.ListExports)
		exports.GET("/:id", middleware.RBACAuthorize(rbacService, "salaryreport", "read"), handler.GetExport)
		exports.GET("/:id/download", middleware.RBACAuthorize(rbacService, "salaryreport", "read"), handler.DownloadExport)
		if redisClient != nil {
			exports.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(0.1, 1),
				middleware.RBACAuthorize(rbacService, "salaryreport", "export"),
				handler.CreateExport,
			)
		} else {
			exports.POST(
				"",
				middleware.RateLimitByUser(0.1, 1),
				middleware.RBACAuthorize(rbacService, "salaryreport", "export"),
				handler.CreateExport,
			)
		}
	}
}
