package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fleetops/internal/events"
	"fleetops/internal/staff"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConsumeStaffLifecycle seeds a zero figure row for the current period when
// a staff member is created, so the month's report lists them immediately.
// Replayed events are skipped once a figure exists, which also protects
// accountant overrides from being zeroed.
func ConsumeStaffLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	staffService staff.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.staff_lifecycle")
	log.Info("staff lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("staff lifecycle consumer stopped")
				return
			}
			log.Error("fetch staff lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.StaffCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode staff_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		now := time.Now().UTC()
		year, month := now.Year(), int(now.Month())

		_, err = staffService.GetFigure(ctx, event.CompanyID, event.StaffID, year, month)
		if err == nil {
			log.Warn("figure already exists for event, skipping",
				zap.String("staff_id", event.StaffID),
				zap.String("company_id", event.CompanyID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("check existing figure failed",
				zap.String("staff_id", event.StaffID),
				zap.Error(err),
			)
			continue
		}

		_, err = staffService.UpsertFigure(ctx, event.CompanyID, event.StaffID, year, month, staff.UpsertFigureRequest{})
		if err != nil {
			log.Error("seed staff figure failed",
				zap.String("staff_id", event.StaffID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit staff lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("staff figure seeded from staff_created event",
			zap.String("staff_id", event.StaffID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
