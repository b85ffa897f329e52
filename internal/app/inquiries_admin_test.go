package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"atlas_travel/internal/app"
	"atlas_travel/internal/domain"
)

func loadedInquiries(api *fakeAPI, items []domain.Inquiry) *app.InquiriesAdmin {
	api.ListInquiriesFn = func(domain.InquiriesQuery) ([]domain.Inquiry, error) { return items, nil }
	a := app.NewInquiriesAdmin(api)
	_ = a.Load(context.Background())
	return a
}

func TestOpen_NewInquiryMarkedReadExactlyOnce(t *testing.T) {
	api := &fakeAPI{}
	a := loadedInquiries(api, []domain.Inquiry{{ID: "i1", Email: "x@example.com", Status: domain.InquiryNew}})

	inq, err := a.Open(context.Background(), "i1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if inq.Status != domain.InquiryRead {
		t.Fatalf("expected read status, got %s", inq.Status)
	}
	if api.count("UpdateInquiryStatus") != 1 {
		t.Fatalf("expected exactly one update call, got %d", api.count("UpdateInquiryStatus"))
	}

	// Re-opening the now-read inquiry issues no further call.
	if _, err := a.Open(context.Background(), "i1"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if api.count("UpdateInquiryStatus") != 1 {
		t.Fatalf("expected no further calls, got %d", api.count("UpdateInquiryStatus"))
	}
}

func TestOpen_ReadAndRespondedIssueNoCall(t *testing.T) {
	api := &fakeAPI{}
	a := loadedInquiries(api, []domain.Inquiry{
		{ID: "i1", Status: domain.InquiryRead},
		{ID: "i2", Status: domain.InquiryResponded},
	})

	for _, id := range []string{"i1", "i2"} {
		if _, err := a.Open(context.Background(), id); err != nil {
			t.Fatalf("open %s: %v", id, err)
		}
	}
	if api.count("UpdateInquiryStatus") != 0 {
		t.Fatalf("expected zero update calls, got %d", api.count("UpdateInquiryStatus"))
	}
}

func TestQuickReply_ComposesMailtoAndMarksResponded(t *testing.T) {
	api := &fakeAPI{}
	a := loadedInquiries(api, []domain.Inquiry{{ID: "i1", Email: "guest@example.com", Status: domain.InquiryRead}})

	uri, err := a.QuickReply(context.Background(), "i1", "Re: your trip", "Hello & thanks!")
	if err != nil {
		t.Fatalf("quick reply: %v", err)
	}
	if !strings.HasPrefix(uri, "mailto:guest@example.com?") {
		t.Fatalf("unexpected uri: %s", uri)
	}
	if !strings.Contains(uri, "subject=Re%3A%20your%20trip") {
		t.Fatalf("subject not percent-encoded: %s", uri)
	}
	if !strings.Contains(uri, "body=Hello%20%26%20thanks%21") {
		t.Fatalf("body not percent-encoded: %s", uri)
	}
	if api.count("UpdateInquiryStatus") != 1 {
		t.Fatalf("expected responded update, got %d calls", api.count("UpdateInquiryStatus"))
	}
}

func TestQuickReply_StatusFailureStillReturnsURI(t *testing.T) {
	api := &fakeAPI{
		UpdateInquiryFn: func(string, domain.InquiryStatus) (domain.Inquiry, error) {
			return domain.Inquiry{}, errors.New("boom")
		},
	}
	a := loadedInquiries(api, []domain.Inquiry{{ID: "i1", Email: "guest@example.com", Status: domain.InquiryRead}})

	uri, err := a.QuickReply(context.Background(), "i1", "s", "b")
	if err == nil {
		t.Fatalf("expected error")
	}
	// The mail client was already handed the draft; the URI must survive.
	if uri == "" {
		t.Fatalf("expected uri despite failed status update")
	}
}

func TestOpen_UnknownInquiry(t *testing.T) {
	a := loadedInquiries(&fakeAPI{}, nil)
	if _, err := a.Open(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
