package app_test

import (
	"context"
	"errors"
	"testing"

	"atlas_travel/internal/app"
	"atlas_travel/internal/domain"
)

func baliPackage(price float64) domain.Package {
	return domain.Package{ID: "p1", Name: "Bali Escape", Price: price, Active: true}
}

func fillPersonal(f *app.BookingFlow) {
	f.SetCustomerName("Asha Rao")
	f.SetEmail("asha@example.com")
	f.SetPhone("+91 98765 43210")
}

func TestNext_BlockedUntilPersonalFieldsValid(t *testing.T) {
	api := &fakeAPI{}
	f := app.NewBookingFlow(api, baliPackage(20000), nil)

	if f.Next() {
		t.Fatalf("expected Next to block on empty fields")
	}
	for _, field := range []string{"CustomerName", "Email", "Phone"} {
		if _, ok := f.FieldErrors()[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, f.FieldErrors())
		}
	}

	f.SetCustomerName("Asha Rao")
	f.SetEmail("not-an-email")
	f.SetPhone("+91 98765 43210")
	if f.Next() {
		t.Fatalf("expected Next to block on bad email")
	}
	if _, ok := f.FieldErrors()["Email"]; !ok {
		t.Fatalf("expected Email error, got %v", f.FieldErrors())
	}
	// CustomerName error cleared by the earlier edit.
	if _, ok := f.FieldErrors()["CustomerName"]; ok {
		t.Fatalf("expected CustomerName error cleared, got %v", f.FieldErrors())
	}

	f.SetEmail("asha@example.com")
	if !f.Next() {
		t.Fatalf("expected Next to pass, errors: %v", f.FieldErrors())
	}
	if f.Step() != app.StepTravel {
		t.Fatalf("expected travel step, got %v", f.Step())
	}
}

func TestEditingFieldClearsItsError(t *testing.T) {
	api := &fakeAPI{}
	f := app.NewBookingFlow(api, baliPackage(20000), nil)

	f.Next() // populate step-1 errors
	f.SetEmail("asha@example.com")
	if _, ok := f.FieldErrors()["Email"]; ok {
		t.Fatalf("editing Email should clear its error")
	}
	if _, ok := f.FieldErrors()["Phone"]; !ok {
		t.Fatalf("other field errors must remain")
	}
}

func TestSubmit_TotalPriceIsPriceTimesTravelers(t *testing.T) {
	var got domain.NewBooking
	api := &fakeAPI{
		CreateBookingFn: func(nb domain.NewBooking) (domain.Booking, error) {
			got = nb
			return domain.Booking{ID: "b1", Status: domain.BookingPending, TotalPrice: nb.TotalPrice}, nil
		},
	}
	var cbCalled bool
	f := app.NewBookingFlow(api, baliPackage(20000), func(domain.Booking) { cbCalled = true })

	fillPersonal(f)
	if !f.Next() {
		t.Fatalf("next blocked: %v", f.FieldErrors())
	}
	f.SetTravelDate("2026-10-01")
	f.SetTravelers(2)

	b, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.TotalPrice != 40000 {
		t.Fatalf("expected submitted totalPrice 40000, got %v", got.TotalPrice)
	}
	if got.Travelers != 2 || got.PackageID != "p1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if b.ID != "b1" {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if !cbCalled {
		t.Fatalf("expected onSuccess callback")
	}
}

func TestSubmit_BlockedOnPersonalStep(t *testing.T) {
	api := &fakeAPI{}
	f := app.NewBookingFlow(api, baliPackage(20000), nil)
	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected error submitting from step 1")
	}
	if api.count("CreateBooking") != 0 {
		t.Fatalf("no network call expected")
	}
}

func TestSubmit_InvalidTravelFieldsNoNetworkCall(t *testing.T) {
	api := &fakeAPI{}
	f := app.NewBookingFlow(api, baliPackage(20000), nil)
	fillPersonal(f)
	f.Next()
	f.SetTravelDate("not-a-date")

	_, err := f.Submit(context.Background())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.count("CreateBooking") != 0 {
		t.Fatalf("expected zero network calls, got %d", api.count("CreateBooking"))
	}
}

func TestSubmit_ServerErrorSurfacedInline(t *testing.T) {
	api := &fakeAPI{
		CreateBookingFn: func(domain.NewBooking) (domain.Booking, error) {
			return domain.Booking{}, errors.New("connection refused")
		},
	}
	f := app.NewBookingFlow(api, baliPackage(20000), nil)
	fillPersonal(f)
	f.Next()
	f.SetTravelDate("2026-10-01")

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if f.Message() != "Failed to submit booking. Please try again." {
		t.Fatalf("expected generic fallback message, got %q", f.Message())
	}
	// one attempt, no retry
	if api.count("CreateBooking") != 1 {
		t.Fatalf("expected exactly one submission attempt, got %d", api.count("CreateBooking"))
	}
}

func TestDefaultTravelersIsOne(t *testing.T) {
	api := &fakeAPI{}
	f := app.NewBookingFlow(api, baliPackage(12500), nil)
	if f.TotalPrice() != 12500 {
		t.Fatalf("expected default travelers 1, total %v", f.TotalPrice())
	}
}
