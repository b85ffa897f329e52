package agency

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"atlas_travel/internal/domain"
)

// Compile-time checks that the client satisfies every port the app layer
// consumes.
var (
	_ domain.CatalogAPI      = (*Client)(nil)
	_ domain.BookingAPI      = (*Client)(nil)
	_ domain.InquiryAPI      = (*Client)(nil)
	_ domain.BookingAdminAPI = (*Client)(nil)
	_ domain.InquiryAdminAPI = (*Client)(nil)
	_ domain.GalleryAPI      = (*Client)(nil)
	_ domain.PackageAdminAPI = (*Client)(nil)
	_ domain.ReviewAdminAPI  = (*Client)(nil)
	_ domain.AuthAPI         = (*Client)(nil)
	_ domain.StatsAPI        = (*Client)(nil)
)

// ---- Catalog (public) ----

func (c *Client) ListPackages(ctx context.Context, q domain.PackagesQuery) ([]domain.Package, error) {
	v := url.Values{}
	if q.Destination != nil {
		v.Set("destination", *q.Destination)
	}
	if q.Category != nil {
		v.Set("category", *q.Category)
	}
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if q.Search != nil {
		v.Set("q", *q.Search)
	}
	var out []domain.Package
	return out, c.do(ctx, "/packages", http.MethodGet, "/packages", v, nil, &out)
}

func (c *Client) GetPackage(ctx context.Context, id string) (domain.Package, error) {
	var out domain.Package
	return out, c.do(ctx, "/packages/{id}", http.MethodGet, "/packages/"+url.PathEscape(id), nil, nil, &out)
}

// ---- Bookings ----

func (c *Client) CreateBooking(ctx context.Context, nb domain.NewBooking) (domain.Booking, error) {
	var out domain.Booking
	return out, c.do(ctx, "/bookings", http.MethodPost, "/bookings", nil, nb, &out)
}

func (c *Client) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	v := url.Values{}
	if q.Status != nil {
		v.Set("status", string(*q.Status))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	v.Set("limit", strconv.Itoa(limit))
	var out []domain.Booking
	return out, c.do(ctx, "/admin/bookings", http.MethodGet, "/admin/bookings", v, nil, &out)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	body := struct {
		Status domain.BookingStatus `json:"status"`
	}{status}
	var out domain.Booking
	return out, c.do(ctx, "/admin/bookings/{id}", http.MethodPut, "/admin/bookings/"+url.PathEscape(id), nil, body, &out)
}

// ---- Inquiries ----

func (c *Client) CreateInquiry(ctx context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	var out domain.Inquiry
	return out, c.do(ctx, "/inquiries", http.MethodPost, "/inquiries", nil, ni, &out)
}

func (c *Client) CreateContact(ctx context.Context, ni domain.NewInquiry) (domain.Inquiry, error) {
	var out domain.Inquiry
	return out, c.do(ctx, "/contact", http.MethodPost, "/contact", nil, ni, &out)
}

func (c *Client) ListInquiries(ctx context.Context, q domain.InquiriesQuery) ([]domain.Inquiry, error) {
	v := url.Values{}
	if q.Status != nil {
		v.Set("status", string(*q.Status))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	var out []domain.Inquiry
	return out, c.do(ctx, "/admin/inquiries", http.MethodGet, "/admin/inquiries", v, nil, &out)
}

func (c *Client) UpdateInquiryStatus(ctx context.Context, id string, status domain.InquiryStatus) (domain.Inquiry, error) {
	body := struct {
		Status domain.InquiryStatus `json:"status"`
	}{status}
	var out domain.Inquiry
	return out, c.do(ctx, "/admin/inquiries/{id}", http.MethodPut, "/admin/inquiries/"+url.PathEscape(id), nil, body, &out)
}

// ---- Gallery ----

func (c *Client) ListImages(ctx context.Context, category *string) ([]domain.GalleryImage, error) {
	v := url.Values{}
	if category != nil {
		v.Set("category", *category)
	}
	var out []domain.GalleryImage
	return out, c.do(ctx, "/gallery", http.MethodGet, "/gallery", v, nil, &out)
}

// UploadImage posts the image and its metadata as one multipart body.
func (c *Client) UploadImage(ctx context.Context, up domain.GalleryUpload) (domain.GalleryImage, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.GalleryImage{}, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, up.FileName))
	hdr.Set("Content-Type", up.ContentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return domain.GalleryImage{}, fmt.Errorf("agency: read upload: %w", err)
	}

	_ = w.WriteField("category", up.Meta.Category)
	if up.Meta.Caption != nil {
		_ = w.WriteField("caption", *up.Meta.Caption)
	}
	if up.Meta.Destination != nil {
		_ = w.WriteField("destination", *up.Meta.Destination)
	}
	_ = w.WriteField("order", strconv.Itoa(up.Meta.Order))
	if err := w.Close(); err != nil {
		return domain.GalleryImage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/admin/gallery", &buf)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out domain.GalleryImage
	return out, c.roundTrip(req, "/admin/gallery", &out)
}

func (c *Client) UpdateImage(ctx context.Context, id string, meta domain.GalleryMeta) (domain.GalleryImage, error) {
	var out domain.GalleryImage
	return out, c.do(ctx, "/admin/gallery/{id}", http.MethodPut, "/admin/gallery/"+url.PathEscape(id), nil, meta, &out)
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.do(ctx, "/admin/gallery/{id}", http.MethodDelete, "/admin/gallery/"+url.PathEscape(id), nil, nil, nil)
}

// ---- Admin package CRUD ----

func (c *Client) CreatePackage(ctx context.Context, in domain.PackageInput) (domain.Package, error) {
	var out domain.Package
	return out, c.do(ctx, "/packages", http.MethodPost, "/packages", nil, in, &out)
}

func (c *Client) UpdatePackage(ctx context.Context, id string, in domain.PackageInput) (domain.Package, error) {
	var out domain.Package
	return out, c.do(ctx, "/packages/{id}", http.MethodPut, "/packages/"+url.PathEscape(id), nil, in, &out)
}

func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, "/packages/{id}", http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) SetPackageFlags(ctx context.Context, id string, flags domain.PackageFlags) (domain.Package, error) {
	var out domain.Package
	return out, c.do(ctx, "/packages/{id}", http.MethodPatch, "/packages/"+url.PathEscape(id), nil, flags, &out)
}

// ---- Review moderation ----

func (c *Client) ListReviews(ctx context.Context, status *domain.ReviewStatus) ([]domain.Review, error) {
	v := url.Values{}
	if status != nil {
		v.Set("status", string(*status))
	}
	var out []domain.Review
	return out, c.do(ctx, "/admin/reviews", http.MethodGet, "/admin/reviews", v, nil, &out)
}

func (c *Client) UpdateReviewStatus(ctx context.Context, id string, status domain.ReviewStatus) (domain.Review, error) {
	body := struct {
		Status domain.ReviewStatus `json:"status"`
	}{status}
	var out domain.Review
	return out, c.do(ctx, "/admin/reviews/{id}", http.MethodPut, "/admin/reviews/"+url.PathEscape(id), nil, body, &out)
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, "/admin/reviews/{id}", http.MethodDelete, "/admin/reviews/"+url.PathEscape(id), nil, nil, nil)
}

// ---- Auth & stats ----

func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out domain.Session
	return out, c.do(ctx, "/auth/login", http.MethodPost, "/auth/login", nil, body, &out)
}

func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var out domain.Stats
	return out, c.do(ctx, "/admin/stats", http.MethodGet, "/admin/stats", nil, nil, &out)
}
