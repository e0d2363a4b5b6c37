package messaging

import "time"

// WorkDayRecordedEvent is the JSON payload sent via SQS for the payroll queue
// whenever a worked day with computable hours is saved.
type WorkDayRecordedEvent struct {
	WorkDayID  int64   `json:"workDayId"`
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	NetHours   float64 `json:"netHours"`
}

// DaySummaryEmailEvent is the JSON payload sent via SQS for the email queue.
type DaySummaryEmailEvent struct {
	WorkDayID  int64     `json:"workDayId"`
	EmployeeID string    `json:"employeeId"`
	Date       string    `json:"date"`
	NetHours   float64   `json:"netHours"`
	OccurredAt time.Time `json:"occurredAt"`
}
