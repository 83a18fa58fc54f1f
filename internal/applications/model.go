package applications

import "time"

// Status tracks how far a customer inquiry has moved through the CRM
// pipeline.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusProcessed  Status = "processed"
	StatusRejected   Status = "rejected"
)

// Valid reports whether the status is one of the known pipeline states.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusProcessed, StatusRejected:
		return true
	}
	return false
}

// Application is a customer inquiry submitted through the site's
// contact form and worked by CRM managers.
type Application struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone,omitempty"`
	Email          string     `json:"email,omitempty"`
	Message        string     `json:"message"`
	Status         Status     `json:"status"`
	ManagerComment string     `json:"manager_comment,omitempty"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ContactInfo joins the available contact channels for list views.
func (a *Application) ContactInfo() string {
	switch {
	case a.Phone != "" && a.Email != "":
		return a.Phone + " | " + a.Email
	case a.Phone != "":
		return a.Phone
	case a.Email != "":
		return a.Email
	}
	return "-"
}

// stampProcessedAt recomputes the processed timestamp from the status.
// It runs on every save, not only on the transition edge, so a bulk
// status overwrite still yields a consistent timestamp.
func (a *Application) stampProcessedAt(now time.Time) {
	if a.Status == StatusProcessed {
		if a.ProcessedAt == nil {
			a.ProcessedAt = &now
		}
		return
	}
	a.ProcessedAt = nil
}
