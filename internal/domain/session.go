package domain

// User is the admin profile returned alongside the bearer token.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session is the client-held credential state: an opaque bearer token plus
// the logged-in user. It lives from login (or hydration from the persisted
// store at startup) until explicit logout; there is no expiry-driven
// eviction on the client.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	Packages        int `json:"packages"`
	Bookings        int `json:"bookings"`
	PendingBookings int `json:"pendingBookings"`
	Inquiries       int `json:"inquiries"`
	NewInquiries    int `json:"newInquiries"`
	GalleryImages   int `json:"galleryImages"`
	Reviews         int `json:"reviews"`
	PendingReviews  int `json:"pendingReviews"`
}
