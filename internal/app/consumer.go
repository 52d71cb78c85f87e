package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fleetops/internal/events"
	"fleetops/internal/messaging/kafka"
	"fleetops/internal/messaging/kafka/consumer"
	"fleetops/internal/pettycash"
	"fleetops/internal/salaryconfig"
	"fleetops/internal/salaryreport"
	"fleetops/internal/shared/connection"
	"fleetops/internal/staff"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer runs the two event consumers: figure seeding on staff
// creation and report export builds.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	staffRepo := staff.NewRepository(gormDB)
	staffService := staff.NewService(sqlDB, staffRepo, nil)

	configRepo := salaryconfig.NewRepository(gormDB)
	configService := salaryconfig.NewService(sqlDB, configRepo)
	pettyCashRepo := pettycash.NewRepository(gormDB)
	exportRepo := salaryreport.NewExportRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	reportService := salaryreport.NewService(
		sqlDB,
		staffRepo,
		pettyCashRepo,
		configService,
		exportRepo,
		outboxRepo,
		nil,
		os.Getenv("EXPORT_DIR"),
	)

	staffReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.StaffCreatedTopic,
		GroupID:        "fleetops-staff-figures",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer staffReader.Close()

	exportReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.ReportExportRequestedTopic,
		GroupID:        "fleetops-report-exports",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer exportReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeStaffLifecycle(ctx, staffReader, staffService, logger)
	go consumer.ConsumeReportExportRequested(ctx, exportReader, reportService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
