package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"atlas_travel/internal/domain"
)

const defaultBookingFetchLimit = 100

// ErrNothingToExport aborts a CSV export over an empty list before any
// byte is written.
var ErrNothingToExport = errors.New("no bookings to export")

// BookingsAdmin is the booking moderation list: status-filtered fetch,
// status mutation with an in-memory patch (no refetch), and client-side
// CSV export of whatever is currently loaded.
type BookingsAdmin struct {
	api    domain.BookingAdminAPI
	filter *domain.BookingStatus
	items  []domain.Booking
}

func NewBookingsAdmin(api domain.BookingAdminAPI) *BookingsAdmin {
	return &BookingsAdmin{api: api}
}

func (a *BookingsAdmin) Load(ctx context.Context) error {
	items, err := a.api.ListBookings(ctx, domain.BookingsQuery{
		Status: a.filter,
		Limit:  defaultBookingFetchLimit,
	})
	if err != nil {
		return err
	}
	a.items = items
	return nil
}

// SetFilter re-issues the fetch with (or, on nil, without) the status
// query parameter.
func (a *BookingsAdmin) SetFilter(ctx context.Context, status *domain.BookingStatus) error {
	a.filter = status
	return a.Load(ctx)
}

func (a *BookingsAdmin) Filter() *domain.BookingStatus { return a.filter }

func (a *BookingsAdmin) Items() []domain.Booking { return a.items }

func (a *BookingsAdmin) Get(id string) (domain.Booking, bool) {
	for _, b := range a.items {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// UpdateStatus mutates the booking remotely, then patches the loaded list
// in place. On failure nothing is touched; there was no optimistic update
// to roll back.
func (a *BookingsAdmin) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	if !status.Valid() {
		return domain.Booking{}, fmt.Errorf("booking: invalid status %q", status)
	}
	b, err := a.api.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return domain.Booking{}, err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i] = b
			break
		}
	}
	return b, nil
}

// ExportCSV writes the currently loaded (filtered) list. An empty list
// returns ErrNothingToExport without touching the writer.
func (a *BookingsAdmin) ExportCSV(w io.Writer) error {
	if len(a.items) == 0 {
		return ErrNothingToExport
	}
	cw := csv.NewWriter(w)
	header := []string{"ID", "Package", "Customer", "Email", "Phone", "Travel Date", "Travelers", "Total Price", "Status", "Created At"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, b := range a.items {
		rec := []string{
			b.ID,
			b.PackageName,
			b.CustomerName,
			b.Email,
			b.Phone,
			b.TravelDate,
			strconv.Itoa(b.Travelers),
			strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
