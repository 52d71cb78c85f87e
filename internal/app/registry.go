package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"fleetops/internal/messaging/kafka"
	"fleetops/internal/middleware"
	"fleetops/internal/pettycash"
	"fleetops/internal/rbac"
	"fleetops/internal/rbac/infra"
	"fleetops/internal/salaryconfig"
	"fleetops/internal/salaryreport"
	"fleetops/internal/shared/counter"
	"fleetops/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	configRepo := salaryconfig.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	pettyCashRepo := pettycash.NewRepository(gormDB)
	exportRepo := salaryreport.NewExportRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	configService := salaryconfig.NewService(db, configRepo)
	staffService := staff.NewServiceWithOutbox(db, staffRepo, outboxRepo, rdb)
	pettyCashService := pettycash.NewService(db, pettyCashRepo, counterRepo)
	reportService := salaryreport.NewService(
		db,
		staffRepo,
		pettyCashRepo,
		configService,
		exportRepo,
		outboxRepo,
		rdb,
		os.Getenv("EXPORT_DIR"),
	)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacRepo)
	configHandler := salaryconfig.NewHandler(configService)
	staffHandler := staff.NewHandler(staffService)
	pettyCashHandler := pettycash.NewHandler(pettyCashService)
	reportHandler := salaryreport.NewHandler(reportService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		salaryconfig.RegisterRoutes(api, configHandler, rbacService)
		staff.RegisterRoutes(api, staffHandler, rbacService)
		pettycash.RegisterRoutes(api, pettyCashHandler, rbacService, rdb)
		salaryreport.RegisterRoutes(api, reportHandler, rbacService, rdb)
	}

	return nil
}
