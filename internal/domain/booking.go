package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a customer's reservation request against a Package. Created by
// a public submission with status pending; status mutated only by admin
// action. There is no delete path.
type Booking struct {
	ID              string        `json:"id"`
	PackageID       string        `json:"packageId"`
	PackageName     string        `json:"packageName,omitempty"`
	CustomerName    string        `json:"customerName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	TravelDate      string        `json:"travelDate"` // YYYY-MM-DD
	Travelers       int           `json:"numberOfTravelers"`
	SpecialRequests *string       `json:"specialRequests,omitempty"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// NewBooking is the public submission payload. TotalPrice is derived as
// package price times Travelers at submission time.
type NewBooking struct {
	PackageID       string  `json:"packageId"`
	CustomerName    string  `json:"customerName"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	TravelDate      string  `json:"travelDate"`
	Travelers       int     `json:"numberOfTravelers"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	TotalPrice      float64 `json:"totalPrice"`
}

// BookingsQuery filters the admin booking list. A nil Status means
// unfiltered; Limit <= 0 falls back to the default fetch limit.
type BookingsQuery struct {
	Status *BookingStatus
	Limit  int
}
