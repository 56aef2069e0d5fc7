package domain

import "time"

// ComplaintStatus is the workflow state of a complaint.
type ComplaintStatus string

const (
	// ComplaintInReview is the initial state; the author may still delete.
	ComplaintInReview ComplaintStatus = "review"
	// ComplaintInProgress means an admin picked the complaint up.
	ComplaintInProgress ComplaintStatus = "in_progress"
	// ComplaintResolved closes the complaint.
	ComplaintResolved ComplaintStatus = "resolved"
)

// Known reports whether s is a valid workflow state.
func (s ComplaintStatus) Known() bool {
	switch s {
	case ComplaintInReview, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

// Complaint is a user report about a court.
type Complaint struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CourtName   string          `json:"court_name"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Validate checks invariants before a complaint is filed.
func (c *Complaint) Validate() error {
	switch {
	case c.CourtName == "":
		return Invalid("court name is required")
	case c.Subject == "":
		return Invalid("complaint subject is required")
	case c.Description == "":
		return Invalid("complaint description is required")
	}
	return nil
}
