package domain

import (
	"context"
	"time"
)

// CatalogAPI is the public, unauthenticated read surface.
type CatalogAPI interface {
	ListPackages(ctx context.Context, q PackagesQuery) ([]Package, error)
	GetPackage(ctx context.Context, id string) (Package, error)
}

// BookingAPI accepts public booking submissions.
type BookingAPI interface {
	CreateBooking(ctx context.Context, nb NewBooking) (Booking, error)
}

// InquiryAPI accepts public inquiries; CreateContact is the generic contact
// form variant (no package reference).
type InquiryAPI interface {
	CreateInquiry(ctx context.Context, ni NewInquiry) (Inquiry, error)
	CreateContact(ctx context.Context, ni NewInquiry) (Inquiry, error)
}

// Admin surfaces. All require a bearer token on the wire.

type BookingAdminAPI interface {
	ListBookings(ctx context.Context, q BookingsQuery) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (Booking, error)
}

type InquiryAdminAPI interface {
	ListInquiries(ctx context.Context, q InquiriesQuery) ([]Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, status InquiryStatus) (Inquiry, error)
}

type GalleryAPI interface {
	ListImages(ctx context.Context, category *string) ([]GalleryImage, error)
	UploadImage(ctx context.Context, up GalleryUpload) (GalleryImage, error)
	UpdateImage(ctx context.Context, id string, meta GalleryMeta) (GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

type PackageAdminAPI interface {
	CreatePackage(ctx context.Context, in PackageInput) (Package, error)
	UpdatePackage(ctx context.Context, id string, in PackageInput) (Package, error)
	DeletePackage(ctx context.Context, id string) error
	SetPackageFlags(ctx context.Context, id string, flags PackageFlags) (Package, error)
}

type ReviewAdminAPI interface {
	ListReviews(ctx context.Context, status *ReviewStatus) ([]Review, error)
	UpdateReviewStatus(ctx context.Context, id string, status ReviewStatus) (Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (Session, error)
}

type StatsAPI interface {
	Stats(ctx context.Context) (Stats, error)
}

// Cache is the catalog query cache (the client-side query-cache analog).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// SessionStore persists the session across restarts.
type SessionStore interface {
	Load() (Session, bool, error)
	Save(s Session) error
	Clear() error
}

// Clock abstracts time for the armed-delete window so the two-click confirm
// is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
