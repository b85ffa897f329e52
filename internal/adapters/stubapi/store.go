package stubapi

import (
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"atlas_travel/internal/domain"
)

// Store is the stub's in-memory state: one admin account and the five
// record collections, all guarded by a single mutex. Slices keep insertion
// order so listings are stable.
type Store struct {
	mu sync.RWMutex

	adminUser domain.User
	adminHash []byte

	packages  []domain.Package
	bookings  []domain.Booking
	inquiries []domain.Inquiry
	images    []domain.GalleryImage
	reviews   []domain.Review

	now func() time.Time
}

func NewStore(username, password string) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Store{
		adminUser: domain.User{ID: uuid.NewString(), Username: username, Name: "Administrator", Role: "admin"},
		adminHash: hash,
		now:       time.Now,
	}, nil
}

// Authenticate checks the admin credentials.
func (s *Store) Authenticate(username, password string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if username != s.adminUser.Username {
		return domain.User{}, false
	}
	if bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) != nil {
		return domain.User{}, false
	}
	return s.adminUser, true
}

func (s *Store) User(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id != s.adminUser.ID {
		return domain.User{}, false
	}
	return s.adminUser, true
}

// ---- Packages ----

func matchesQuery(p domain.Package, q domain.PackagesQuery) bool {
	if q.Destination != nil && !strings.EqualFold(p.Destination, *q.Destination) {
		return false
	}
	if q.Category != nil {
		if p.Category == nil || !strings.EqualFold(*p.Category, *q.Category) {
			return false
		}
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	if q.Search != nil {
		needle := strings.ToLower(*q.Search)
		hay := strings.ToLower(p.Name + " " + p.Destination + " " + p.Description)
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	return true
}

// ListPackages filters the catalog. Inactive packages are only visible to
// authenticated callers.
func (s *Store) ListPackages(q domain.PackagesQuery, includeInactive bool) []domain.Package {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Package{}
	for _, p := range s.packages {
		if !includeInactive && !p.Active {
			continue
		}
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) GetPackage(id string) (domain.Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.packages {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Package{}, false
}

func applyInput(p *domain.Package, in domain.PackageInput) {
	p.Name = in.Name
	p.Destination = in.Destination
	p.Duration = in.Duration
	p.Price = in.Price
	p.Description = in.Description
	p.Itinerary = in.Itinerary
	p.Inclusions = in.Inclusions
	p.Exclusions = in.Exclusions
	p.Images = in.Images
	p.Thumbnail = in.Thumbnail
	p.Category = in.Category
	p.Featured = in.Featured
	p.Active = in.Active
}

func (s *Store) CreatePackage(in domain.PackageInput) domain.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := domain.Package{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	applyInput(&p, in)
	s.packages = append(s.packages, p)
	return p
}

func (s *Store) UpdatePackage(id string, in domain.PackageInput) (domain.Package, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			applyInput(&s.packages[i], in)
			s.packages[i].UpdatedAt = s.now()
			return s.packages[i], true
		}
	}
	return domain.Package{}, false
}

func (s *Store) PatchPackage(id string, flags domain.PackageFlags) (domain.Package, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			if flags.Active != nil {
				s.packages[i].Active = *flags.Active
			}
			if flags.Featured != nil {
				s.packages[i].Featured = *flags.Featured
			}
			s.packages[i].UpdatedAt = s.now()
			return s.packages[i], true
		}
	}
	return domain.Package{}, false
}

func (s *Store) DeletePackage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			s.packages = append(s.packages[:i], s.packages[i+1:]...)
			return true
		}
	}
	return false
}

// ---- Bookings ----

func (s *Store) CreateBooking(nb domain.NewBooking) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pkgName string
	found := false
	for _, p := range s.packages {
		if p.ID == nb.PackageID {
			pkgName = p.Name
			found = true
			break
		}
	}
	if !found {
		return domain.Booking{}, false
	}
	b := domain.Booking{
		ID:              uuid.NewString(),
		PackageID:       nb.PackageID,
		PackageName:     pkgName,
		CustomerName:    nb.CustomerName,
		Email:           nb.Email,
		Phone:           nb.Phone,
		TravelDate:      nb.TravelDate,
		Travelers:       nb.Travelers,
		SpecialRequests: nb.SpecialRequests,
		TotalPrice:      nb.TotalPrice,
		Status:          domain.BookingPending,
		CreatedAt:       s.now(),
	}
	s.bookings = append(s.bookings, b)
	return b, true
}

func (s *Store) ListBookings(q domain.BookingsQuery) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Booking{}
	for _, b := range s.bookings {
		if q.Status != nil && b.Status != *q.Status {
			continue
		}
		out = append(out, b)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

func (s *Store) SetBookingStatus(id string, status domain.BookingStatus) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			return s.bookings[i], true
		}
	}
	return domain.Booking{}, false
}

// ---- Inquiries ----

func (s *Store) CreateInquiry(ni domain.NewInquiry) domain.Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	inq := domain.Inquiry{
		ID:        uuid.NewString(),
		Name:      ni.Name,
		Email:     ni.Email,
		Phone:     ni.Phone,
		PackageID: ni.PackageID,
		Message:   ni.Message,
		Status:    domain.InquiryNew,
		CreatedAt: s.now(),
	}
	if ni.PackageID != nil {
		for _, p := range s.packages {
			if p.ID == *ni.PackageID {
				name := p.Name
				inq.PackageName = &name
				break
			}
		}
	}
	s.inquiries = append(s.inquiries, inq)
	return inq
}

func (s *Store) ListInquiries(q domain.InquiriesQuery) []domain.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Inquiry{}
	for _, inq := range s.inquiries {
		if q.Status != nil && inq.Status != *q.Status {
			continue
		}
		out = append(out, inq)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out
}

func (s *Store) SetInquiryStatus(id string, status domain.InquiryStatus) (domain.Inquiry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.inquiries {
		if s.inquiries[i].ID == id {
			s.inquiries[i].Status = status
			return s.inquiries[i], true
		}
	}
	return domain.Inquiry{}, false
}

// ---- Gallery ----

func (s *Store) AddImage(fileName string, meta domain.GalleryMeta) domain.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	img := domain.GalleryImage{
		ID:          id,
		URL:         "/uploads/" + id + strings.ToLower(path.Ext(fileName)),
		Category:    meta.Category,
		Caption:     meta.Caption,
		Destination: meta.Destination,
		Order:       meta.Order,
		CreatedAt:   s.now(),
	}
	s.images = append(s.images, img)
	return img
}

func (s *Store) ListImages(category *string) []domain.GalleryImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.GalleryImage{}
	for _, img := range s.images {
		if category != nil && !strings.EqualFold(img.Category, *category) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func (s *Store) UpdateImage(id string, meta domain.GalleryMeta) (domain.GalleryImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == id {
			s.images[i].Category = meta.Category
			s.images[i].Caption = meta.Caption
			s.images[i].Destination = meta.Destination
			s.images[i].Order = meta.Order
			return s.images[i], true
		}
	}
	return domain.GalleryImage{}, false
}

func (s *Store) DeleteImage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.images {
		if s.images[i].ID == id {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return true
		}
	}
	return false
}

// ---- Reviews ----

func (s *Store) CreateReview(r domain.Review) domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Status = domain.ReviewPending
	r.CreatedAt = s.now()
	s.reviews = append(s.reviews, r)
	return r
}

func (s *Store) ListReviews(status *domain.ReviewStatus) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Review{}
	for _, r := range s.reviews {
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Store) SetReviewStatus(id string, status domain.ReviewStatus) (domain.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews[i].Status = status
			return s.reviews[i], true
		}
	}
	return domain.Review{}, false
}

func (s *Store) DeleteReview(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return true
		}
	}
	return false
}

// ---- Stats ----

func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.Stats{
		Packages:      len(s.packages),
		Bookings:      len(s.bookings),
		Inquiries:     len(s.inquiries),
		GalleryImages: len(s.images),
		Reviews:       len(s.reviews),
	}
	for _, b := range s.bookings {
		if b.Status == domain.BookingPending {
			st.PendingBookings++
		}
	}
	for _, inq := range s.inquiries {
		if inq.Status == domain.InquiryNew {
			st.NewInquiries++
		}
	}
	for _, r := range s.reviews {
		if r.Status == domain.ReviewPending {
			st.PendingReviews++
		}
	}
	return st
}
