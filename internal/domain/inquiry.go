package domain

import "time"

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryRead      InquiryStatus = "read"
	InquiryResponded InquiryStatus = "responded"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryRead, InquiryResponded:
		return true
	}
	return false
}

// Inquiry is a pre-sale question, optionally tied to a Package. The client
// only ever moves status forward: new→read happens automatically when an
// admin opens the inquiry, any→responded on an explicit reply.
type Inquiry struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       *string       `json:"phone,omitempty"`
	PackageID   *string       `json:"packageId,omitempty"`
	PackageName *string       `json:"packageName,omitempty"`
	Message     string        `json:"message"`
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewInquiry is the submission payload for both the package-inquiry and the
// generic contact variants.
type NewInquiry struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	PackageID *string `json:"packageId,omitempty"`
	Message   string  `json:"message"`
}

type InquiriesQuery struct {
	Status *InquiryStatus
	Limit  int
}
