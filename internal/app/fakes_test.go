package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"atlas_travel/internal/domain"
)

// fakeAPI implements every port the app layer consumes. Each hook defaults
// to an empty success; tests override only what they need. Calls records
// method names in invocation order so tests can assert exact call counts.
type fakeAPI struct {
	mu    sync.Mutex
	Calls []string

	ListPackagesFn  func(domain.PackagesQuery) ([]domain.Package, error)
	GetPackageFn    func(string) (domain.Package, error)
	CreateBookingFn func(domain.NewBooking) (domain.Booking, error)
	ListBookingsFn  func(domain.BookingsQuery) ([]domain.Booking, error)
	UpdateBookingFn func(string, domain.BookingStatus) (domain.Booking, error)
	CreateInquiryFn func(domain.NewInquiry) (domain.Inquiry, error)
	CreateContactFn func(domain.NewInquiry) (domain.Inquiry, error)
	ListInquiriesFn func(domain.InquiriesQuery) ([]domain.Inquiry, error)
	UpdateInquiryFn func(string, domain.InquiryStatus) (domain.Inquiry, error)
	ListImagesFn    func(*string) ([]domain.GalleryImage, error)
	UploadImageFn   func(domain.GalleryUpload) (domain.GalleryImage, error)
	UpdateImageFn   func(string, domain.GalleryMeta) (domain.GalleryImage, error)
	DeleteImageFn   func(string) error
	CreatePackageFn func(domain.PackageInput) (domain.Package, error)
	UpdatePackageFn func(string, domain.PackageInput) (domain.Package, error)
	DeletePackageFn func(string) error
	SetFlagsFn      func(string, domain.PackageFlags) (domain.Package, error)
	ListReviewsFn   func(*domain.ReviewStatus) ([]domain.Review, error)
	UpdateReviewFn  func(string, domain.ReviewStatus) (domain.Review, error)
	DeleteReviewFn  func(string) error
	LoginFn         func(string, string) (domain.Session, error)
	StatsFn         func() (domain.Stats, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListPackages(_ context.Context, q domain.PackagesQuery) ([]domain.Package, error) {
	f.record("ListPackages")
	if f.ListPackagesFn != nil {
		return f.ListPackagesFn(q)
	}
	return nil, nil
}

func (f *fakeAPI) GetPackage(_ context.Context, id string) (domain.Package, error) {
	f.record("GetPackage")
	if f.GetPackageFn != nil {
		return f.GetPackageFn(id)
	}
	return domain.Package{ID: id}, nil
}

func (f *fakeAPI) CreateBooking(_ context.Context, nb domain.NewBooking) (domain.Booking, error) {
	f.record("CreateBooking")
	if f.CreateBookingFn != nil {
		return f.CreateBookingFn(nb)
	}
	return domain.Booking{ID: "b1", Status: domain.BookingPending, TotalPrice: nb.TotalPrice}, nil
}

func (f *fakeAPI) ListBookings(_ context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	f.record("ListBookings")
	if f.ListBookingsFn != nil {
		return f.ListBookingsFn(q)
	}
	return nil, nil
}

func (f *fakeAPI) UpdateBookingStatus(_ context.Context, id string, st domain.BookingStatus) (domain.Booking, error) {
	f.record("UpdateBookingStatus")
	if f.UpdateBookingFn != nil {
		return f.UpdateBookingFn(id, st)
	}
	return domain.Booking{ID: id, Status: st}, nil
}

func (f *fakeAPI) CreateInquiry(_ context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	f.record("CreateInquiry")
	if f.CreateInquiryFn != nil {
		return f.CreateInquiryFn(ni)
	}
	return domain.Inquiry{ID: "i1", Status: domain.InquiryNew}, nil
}

func (f *fakeAPI) CreateContact(_ context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	f.record("CreateContact")
	if f.CreateContactFn != nil {
		return f.CreateContactFn(ni)
	}
	return domain.Inquiry{ID: "i1", Status: domain.InquiryNew}, nil
}

func (f *fakeAPI) ListInquiries(_ context.Context, q domain.InquiriesQuery) ([]domain.Inquiry, error) {
	f.record("ListInquiries")
	if f.ListInquiriesFn != nil {
		return f.ListInquiriesFn(q)
	}
	return nil, nil
}

func (f *fakeAPI) UpdateInquiryStatus(_ context.Context, id string, st domain.InquiryStatus) (domain.Inquiry, error) {
	f.record("UpdateInquiryStatus")
	if f.UpdateInquiryFn != nil {
		return f.UpdateInquiryFn(id, st)
	}
	return domain.Inquiry{ID: id, Status: st}, nil
}

func (f *fakeAPI) ListImages(_ context.Context, category *string) ([]domain.GalleryImage, error) {
	f.record("ListImages")
	if f.ListImagesFn != nil {
		return f.ListImagesFn(category)
	}
	return nil, nil
}

func (f *fakeAPI) UploadImage(_ context.Context, up domain.GalleryUpload) (domain.GalleryImage, error) {
	f.record("UploadImage")
	if f.UploadImageFn != nil {
		return f.UploadImageFn(up)
	}
	return domain.GalleryImage{ID: "g1", Category: up.Meta.Category}, nil
}

func (f *fakeAPI) UpdateImage(_ context.Context, id string, meta domain.GalleryMeta) (domain.GalleryImage, error) {
	f.record("UpdateImage")
	if f.UpdateImageFn != nil {
		return f.UpdateImageFn(id, meta)
	}
	return domain.GalleryImage{ID: id, Category: meta.Category}, nil
}

func (f *fakeAPI) DeleteImage(_ context.Context, id string) error {
	f.record("DeleteImage")
	if f.DeleteImageFn != nil {
		return f.DeleteImageFn(id)
	}
	return nil
}

func (f *fakeAPI) CreatePackage(_ context.Context, in domain.PackageInput) (domain.Package, error) {
	f.record("CreatePackage")
	if f.CreatePackageFn != nil {
		return f.CreatePackageFn(in)
	}
	return domain.Package{ID: "p1", Name: in.Name}, nil
}

func (f *fakeAPI) UpdatePackage(_ context.Context, id string, in domain.PackageInput) (domain.Package, error) {
	f.record("UpdatePackage")
	if f.UpdatePackageFn != nil {
		return f.UpdatePackageFn(id, in)
	}
	return domain.Package{ID: id, Name: in.Name}, nil
}

func (f *fakeAPI) DeletePackage(_ context.Context, id string) error {
	f.record("DeletePackage")
	if f.DeletePackageFn != nil {
		return f.DeletePackageFn(id)
	}
	return nil
}

func (f *fakeAPI) SetPackageFlags(_ context.Context, id string, flags domain.PackageFlags) (domain.Package, error) {
	f.record("SetPackageFlags")
	if f.SetFlagsFn != nil {
		return f.SetFlagsFn(id, flags)
	}
	return domain.Package{ID: id}, nil
}

func (f *fakeAPI) ListReviews(_ context.Context, status *domain.ReviewStatus) ([]domain.Review, error) {
	f.record("ListReviews")
	if f.ListReviewsFn != nil {
		return f.ListReviewsFn(status)
	}
	return nil, nil
}

func (f *fakeAPI) UpdateReviewStatus(_ context.Context, id string, st domain.ReviewStatus) (domain.Review, error) {
	f.record("UpdateReviewStatus")
	if f.UpdateReviewFn != nil {
		return f.UpdateReviewFn(id, st)
	}
	return domain.Review{ID: id, Status: st}, nil
}

func (f *fakeAPI) DeleteReview(_ context.Context, id string) error {
	f.record("DeleteReview")
	if f.DeleteReviewFn != nil {
		return f.DeleteReviewFn(id)
	}
	return nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (domain.Session, error) {
	f.record("Login")
	if f.LoginFn != nil {
		return f.LoginFn(username, password)
	}
	return domain.Session{Token: "tok", User: domain.User{Username: username}}, nil
}

func (f *fakeAPI) Stats(_ context.Context) (domain.Stats, error) {
	f.record("Stats")
	if f.StatsFn != nil {
		return f.StatsFn()
	}
	return domain.Stats{}, nil
}

// fakeStore is an in-memory SessionStore.
type fakeStore struct {
	saved   *domain.Session
	saveErr error
}

func (s *fakeStore) Load() (domain.Session, bool, error) {
	if s.saved == nil {
		return domain.Session{}, false, nil
	}
	return *s.saved, true, nil
}

func (s *fakeStore) Save(sess domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &sess
	return nil
}

func (s *fakeStore) Clear() error {
	s.saved = nil
	return nil
}

// fakeSink records the token handed to the API client.
type fakeSink struct{ token string }

func (s *fakeSink) SetToken(t string) { s.token = t }
func (s *fakeSink) ClearToken()       { s.token = "" }

// fakeClock makes the armed-delete window deterministic.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeCache is keyed JSON storage with recorded deletions.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = raw
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}
