package events

import "time"

const StaffCreatedTopic = "ops.staff.lifecycle.v1"

type StaffCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	StaffID    string    `json:"staff_id"`
	CompanyID  string    `json:"company_id"`
	StaffType  string    `json:"staff_type"`
	OccurredAt time.Time `json:"occurred_at"`
}
