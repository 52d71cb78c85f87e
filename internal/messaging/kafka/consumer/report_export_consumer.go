package consumer

import (
	"context"
	"encoding/json"

	"fleetops/internal/events"
	"fleetops/internal/salaryreport"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeReportExportRequested builds the XLSX workbook for each requested
// export. ProcessExport is idempotent on completed exports, so redelivery
// is safe.
func ConsumeReportExportRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	reportService salaryreport.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.report_export")
	log.Info("report export consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("report export consumer stopped")
				return
			}
			log.Error("fetch report export message failed", zap.Error(err))
			continue
		}

		var event events.ReportExportRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode report export event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reportService.ProcessExport(ctx, event.CompanyID, event.ExportID); err != nil {
			log.Error("process report export failed",
				zap.String("export_id", event.ExportID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			// Build failures are recorded on the export row; commit so a
			// poisoned request does not wedge the partition.
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit report export message failed", zap.Error(err))
			continue
		}

		log.Info("report export processed",
			zap.String("export_id", event.ExportID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
