package events

import "time"

const ReportExportRequestedTopic = "ops.report.export.v1"

type ReportExportRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ExportID    string    `json:"export_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
