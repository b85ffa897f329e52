// Package stubapi is a self-contained, in-memory rendition of the agency
// back office API. It exists to run the client and the workflow layer
// against something real: integration tests host it on httptest, and
// cmd/stub serves it standalone for local development.
package stubapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"atlas_travel/internal/adapters/observability"
)

type Server struct {
	store  *Store
	secret []byte
	mux    *chi.Mux
}

func New(store *Store, secret []byte, logger zerolog.Logger) *Server {
	s := &Server{store: store, secret: secret, mux: chi.NewRouter()}

	s.mux.Use(chimw.RealIP)
	s.mux.Use(chimw.RequestID)
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(timeout(15 * time.Second))
	s.mux.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	s.mux.Use(requestLogger(logger))

	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Mount attaches an extra handler (e.g. /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) { s.mux.Handle(path, h) }

func (s *Server) routes() {
	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Get("/packages", s.listPackages)
		r.Get("/packages/{id}", s.getPackage)
		r.Post("/bookings", s.createBooking)
		r.Post("/inquiries", s.createInquiry)
		r.Post("/contact", s.createInquiry)
		r.Get("/gallery", s.listImages)
		r.Post("/reviews", s.createReview)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/packages", s.createPackage)
			r.Put("/packages/{id}", s.updatePackage)
			r.Patch("/packages/{id}", s.patchPackage)
			r.Delete("/packages/{id}", s.deletePackage)

			r.Get("/admin/bookings", s.listBookings)
			r.Put("/admin/bookings/{id}", s.updateBookingStatus)

			r.Get("/admin/inquiries", s.listInquiries)
			r.Put("/admin/inquiries/{id}", s.updateInquiryStatus)

			r.Post("/admin/gallery", s.uploadImage)
			r.Put("/admin/gallery/{id}", s.updateImage)
			r.Delete("/admin/gallery/{id}", s.deleteImage)

			r.Get("/admin/reviews", s.listReviews)
			r.Put("/admin/reviews/{id}", s.updateReviewStatus)
			r.Delete("/admin/reviews/{id}", s.deleteReview)

			r.Get("/admin/stats", s.stats)
		})
	})
}

func timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// requestLogger logs each request and feeds the stub request counter.
func requestLogger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			observability.ObserveStub(route, r.Method, sw.Status())
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Msg("stub_request")
		})
	}
}
