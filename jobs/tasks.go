// Package jobs holds the asynq task types, the worker wrapper and the
// mail dispatch path used for inquiry notifications.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for transactional email.
	TaskTypeSendEmail = "mail:send"
	// TaskTypePruneAudit is the task type for the scheduled audit
	// history cleanup.
	TaskTypePruneAudit = "audit:prune"
)

// SendEmailPayload describes one outbound message.
type SendEmailPayload struct {
	To      []string `json:"to"`
	From    string   `json:"from"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// NewSendEmailTask constructs an asynq task for the payload.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewPruneAuditTask constructs the scheduled audit cleanup task. The
// retention window lives in worker configuration, so the task carries
// no payload.
func NewPruneAuditTask() *asynq.Task {
	return asynq.NewTask(TaskTypePruneAudit, nil)
}
