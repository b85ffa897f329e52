package domain

import "time"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

// Review is a user-submitted review awaiting moderation.
type Review struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       *string      `json:"email,omitempty"`
	Rating      int          `json:"rating"` // 1..5
	Comment     string       `json:"comment"`
	Destination *string      `json:"destination,omitempty"`
	Status      ReviewStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}
