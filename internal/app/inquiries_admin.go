package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"atlas_travel/internal/domain"
)

// InquiriesAdmin is the inquiry moderation list. Opening a new inquiry
// marks it read before display; quick reply hands the operator a mailto
// draft and then marks the inquiry responded.
type InquiriesAdmin struct {
	api    domain.InquiryAdminAPI
	filter *domain.InquiryStatus
	items  []domain.Inquiry
}

func NewInquiriesAdmin(api domain.InquiryAdminAPI) *InquiriesAdmin {
	return &InquiriesAdmin{api: api}
}

func (a *InquiriesAdmin) Load(ctx context.Context) error {
	items, err := a.api.ListInquiries(ctx, domain.InquiriesQuery{Status: a.filter})
	if err != nil {
		return err
	}
	a.items = items
	return nil
}

func (a *InquiriesAdmin) SetFilter(ctx context.Context, status *domain.InquiryStatus) error {
	a.filter = status
	return a.Load(ctx)
}

func (a *InquiriesAdmin) Filter() *domain.InquiryStatus { return a.filter }

func (a *InquiriesAdmin) Items() []domain.Inquiry { return a.items }

// Open returns the inquiry for the detail view. A new inquiry is marked
// read first with a single update call; read or responded inquiries issue
// none.
func (a *InquiriesAdmin) Open(ctx context.Context, id string) (domain.Inquiry, error) {
	inq, ok := a.find(id)
	if !ok {
		return domain.Inquiry{}, fmt.Errorf("inquiry %s: %w", id, domain.ErrNotFound)
	}
	if inq.Status != domain.InquiryNew {
		return inq, nil
	}
	upd, err := a.api.UpdateInquiryStatus(ctx, id, domain.InquiryRead)
	if err != nil {
		return domain.Inquiry{}, err
	}
	a.patch(upd)
	return upd, nil
}

// MarkResponded is the explicit admin action.
func (a *InquiriesAdmin) MarkResponded(ctx context.Context, id string) (domain.Inquiry, error) {
	upd, err := a.api.UpdateInquiryStatus(ctx, id, domain.InquiryResponded)
	if err != nil {
		return domain.Inquiry{}, err
	}
	a.patch(upd)
	return upd, nil
}

// QuickReply composes the mailto URI for the inquiry's sender and then
// marks it responded. The URI is returned even when the status update
// fails: the mail client has already been handed the draft by then.
func (a *InquiriesAdmin) QuickReply(ctx context.Context, id, subject, body string) (string, error) {
	inq, ok := a.find(id)
	if !ok {
		return "", fmt.Errorf("inquiry %s: %w", id, domain.ErrNotFound)
	}
	uri := MailtoURI(inq.Email, subject, body)
	upd, err := a.api.UpdateInquiryStatus(ctx, id, domain.InquiryResponded)
	if err != nil {
		return uri, err
	}
	a.patch(upd)
	return uri, nil
}

func (a *InquiriesAdmin) find(id string) (domain.Inquiry, bool) {
	for _, inq := range a.items {
		if inq.ID == id {
			return inq, true
		}
	}
	return domain.Inquiry{}, false
}

func (a *InquiriesAdmin) patch(upd domain.Inquiry) {
	for i := range a.items {
		if a.items[i].ID == upd.ID {
			a.items[i] = upd
			return
		}
	}
}

// MailtoURI builds a mailto link with percent-encoded subject and body.
func MailtoURI(to, subject, body string) string {
	esc := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:" + to + "?subject=" + esc(subject) + "&body=" + esc(body)
}
