package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atlas_travel/internal/app"
	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

// envelope is the wire shape every endpoint answers with.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("write response failed")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeFieldErrors(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "Validation failed", Errors: errs})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ---- Auth ----

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in loginPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	u, ok := s.store.Authenticate(in.Username, in.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	tok, err := s.issueToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeData(w, http.StatusOK, domain.Session{Token: tok, User: u})
}

// ---- Packages ----

func packagesQuery(r *http.Request) domain.PackagesQuery {
	var q domain.PackagesQuery
	v := r.URL.Query()
	if d := v.Get("destination"); d != "" {
		q.Destination = &d
	}
	if c := v.Get("category"); c != "" {
		q.Category = &c
	}
	if f := v.Get("featured"); f != "" {
		b, err := strconv.ParseBool(f)
		if err == nil {
			q.Featured = &b
		}
	}
	if s := v.Get("q"); s != "" {
		q.Search = &s
	}
	return q
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	_, authed := s.callerUser(r)
	writeData(w, http.StatusOK, s.store.ListPackages(packagesQuery(r), authed))
}

func (s *Server) getPackage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.GetPackage(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Package not found")
		return
	}
	if !p.Active {
		if _, authed := s.callerUser(r); !authed {
			writeError(w, http.StatusNotFound, "Package not found")
			return
		}
	}
	writeData(w, http.StatusOK, p)
}

type packagePayload struct {
	Name        string   `json:"name" validate:"required"`
	Destination string   `json:"destination" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Description string   `json:"description"`
	Itinerary   []string `json:"itinerary"`
	Inclusions  []string `json:"inclusions"`
	Exclusions  []string `json:"exclusions"`
	Images      []string `json:"images"`
	Thumbnail   *string  `json:"thumbnail"`
	Category    *string  `json:"category"`
	Featured    bool     `json:"featured"`
	Active      bool     `json:"active"`
}

func (p packagePayload) input() domain.PackageInput {
	return domain.PackageInput{
		Name:        p.Name,
		Destination: p.Destination,
		Duration:    p.Duration,
		Price:       p.Price,
		Description: p.Description,
		Itinerary:   p.Itinerary,
		Inclusions:  p.Inclusions,
		Exclusions:  p.Exclusions,
		Images:      p.Images,
		Thumbnail:   p.Thumbnail,
		Category:    p.Category,
		Featured:    p.Featured,
		Active:      p.Active,
	}
}

func (s *Server) createPackage(w http.ResponseWriter, r *http.Request) {
	var in packagePayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	writeData(w, http.StatusCreated, s.store.CreatePackage(in.input()))
}

func (s *Server) updatePackage(w http.ResponseWriter, r *http.Request) {
	var in packagePayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	p, ok := s.store.UpdatePackage(chi.URLParam(r, "id"), in.input())
	if !ok {
		writeError(w, http.StatusNotFound, "Package not found")
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) patchPackage(w http.ResponseWriter, r *http.Request) {
	var flags domain.PackageFlags
	if !decodeJSON(w, r, &flags) {
		return
	}
	p, ok := s.store.PatchPackage(chi.URLParam(r, "id"), flags)
	if !ok {
		writeError(w, http.StatusNotFound, "Package not found")
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) deletePackage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeletePackage(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Package not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Bookings ----

type bookingPayload struct {
	PackageID       string  `json:"packageId" validate:"required"`
	CustomerName    string  `json:"customerName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required,phone"`
	TravelDate      string  `json:"travelDate" validate:"required,datetime=2006-01-02"`
	Travelers       int     `json:"numberOfTravelers" validate:"required,min=1"`
	SpecialRequests *string `json:"specialRequests"`
	TotalPrice      float64 `json:"totalPrice"`
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var in bookingPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	b, ok := s.store.CreateBooking(domain.NewBooking{
		PackageID:       in.PackageID,
		CustomerName:    in.CustomerName,
		Email:           in.Email,
		Phone:           in.Phone,
		TravelDate:      in.TravelDate,
		Travelers:       in.Travelers,
		SpecialRequests: in.SpecialRequests,
		TotalPrice:      in.TotalPrice,
	})
	if !ok {
		writeFieldErrors(w, map[string]string{"PackageID": "Unknown package"})
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	var q domain.BookingsQuery
	if st := r.URL.Query().Get("status"); st != "" {
		status := domain.BookingStatus(st)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown booking status")
			return
		}
		q.Status = &status
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			q.Limit = n
		}
	}
	writeData(w, http.StatusOK, s.store.ListBookings(q))
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (s *Server) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var in statusPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	status := domain.BookingStatus(in.Status)
	if !status.Valid() {
		writeFieldErrors(w, map[string]string{"Status": "Unknown booking status"})
		return
	}
	b, ok := s.store.SetBookingStatus(chi.URLParam(r, "id"), status)
	if !ok {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	writeData(w, http.StatusOK, b)
}

// ---- Inquiries ----

type inquiryPayload struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,phone"`
	PackageID *string `json:"packageId"`
	Message   string  `json:"message" validate:"required"`
}

func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request) {
	var in inquiryPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	inq := s.store.CreateInquiry(domain.NewInquiry{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		PackageID: in.PackageID,
		Message:   in.Message,
	})
	writeData(w, http.StatusCreated, inq)
}

func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request) {
	var q domain.InquiriesQuery
	if st := r.URL.Query().Get("status"); st != "" {
		status := domain.InquiryStatus(st)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown inquiry status")
			return
		}
		q.Status = &status
	}
	writeData(w, http.StatusOK, s.store.ListInquiries(q))
}

func (s *Server) updateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var in statusPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	status := domain.InquiryStatus(in.Status)
	if !status.Valid() {
		writeFieldErrors(w, map[string]string{"Status": "Unknown inquiry status"})
		return
	}
	inq, ok := s.store.SetInquiryStatus(chi.URLParam(r, "id"), status)
	if !ok {
		writeError(w, http.StatusNotFound, "Inquiry not found")
		return
	}
	writeData(w, http.StatusOK, inq)
}

// ---- Gallery ----

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

func (s *Server) listImages(w http.ResponseWriter, r *http.Request) {
	var category *string
	if c := r.URL.Query().Get("category"); c != "" {
		category = &c
	}
	writeData(w, http.StatusOK, s.store.ListImages(category))
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	file, hdr, err := r.FormFile("image")
	if err != nil {
		writeFieldErrors(w, map[string]string{"image": "Image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	errs := map[string]string{}
	if _, ok := allowedImageTypes[hdr.Header.Get("Content-Type")]; !ok {
		errs["image"] = "Only JPEG, PNG and WebP images are allowed"
	}
	if hdr.Size > app.MaxUploadSize {
		errs["image"] = "Image must be 5 MB or smaller"
	}
	meta := domain.GalleryMeta{Category: strings.TrimSpace(r.FormValue("category"))}
	if meta.Category == "" {
		errs["category"] = "This field is required"
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	if c := r.FormValue("caption"); c != "" {
		meta.Caption = &c
	}
	if d := r.FormValue("destination"); d != "" {
		meta.Destination = &d
	}
	if o := r.FormValue("order"); o != "" {
		if n, err := strconv.Atoi(o); err == nil {
			meta.Order = n
		}
	}
	writeData(w, http.StatusCreated, s.store.AddImage(hdr.Filename, meta))
}

func (s *Server) updateImage(w http.ResponseWriter, r *http.Request) {
	var meta domain.GalleryMeta
	if !decodeJSON(w, r, &meta) {
		return
	}
	if strings.TrimSpace(meta.Category) == "" {
		writeFieldErrors(w, map[string]string{"category": "This field is required"})
		return
	}
	img, ok := s.store.UpdateImage(chi.URLParam(r, "id"), meta)
	if !ok {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeData(w, http.StatusOK, img)
}

func (s *Server) deleteImage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteImage(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Reviews ----

type reviewPayload struct {
	Name        string  `json:"name" validate:"required"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Comment     string  `json:"comment" validate:"required"`
	Destination *string `json:"destination"`
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var in reviewPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	if errs := shared.ValidateStruct(in); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	rev := s.store.CreateReview(domain.Review{
		Name:        in.Name,
		Email:       in.Email,
		Rating:      in.Rating,
		Comment:     in.Comment,
		Destination: in.Destination,
	})
	writeData(w, http.StatusCreated, rev)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	var status *domain.ReviewStatus
	if st := r.URL.Query().Get("status"); st != "" {
		v := domain.ReviewStatus(st)
		if !v.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown review status")
			return
		}
		status = &v
	}
	writeData(w, http.StatusOK, s.store.ListReviews(status))
}

func (s *Server) updateReviewStatus(w http.ResponseWriter, r *http.Request) {
	var in statusPayload
	if !decodeJSON(w, r, &in) {
		return
	}
	status := domain.ReviewStatus(in.Status)
	if !status.Valid() {
		writeFieldErrors(w, map[string]string{"Status": "Unknown review status"})
		return
	}
	rev, ok := s.store.SetReviewStatus(chi.URLParam(r, "id"), status)
	if !ok {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}
	writeData(w, http.StatusOK, rev)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteReview(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Stats ----

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, s.store.Stats())
}
