package domain

import "time"

// Package is a sellable travel itinerary record. Publicly readable when
// Active; created, edited and deleted only through admin moderation.
type Package struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"` // days
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Itinerary   []string  `json:"itinerary"`
	Inclusions  []string  `json:"inclusions"`
	Exclusions  []string  `json:"exclusions"`
	Images      []string  `json:"images"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PackageInput is the write shape for admin package CRUD. List fields are
// already parsed into ordered slices; the form layer owns the
// newline-splitting.
type PackageInput struct {
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Itinerary   []string `json:"itinerary"`
	Inclusions  []string `json:"inclusions"`
	Exclusions  []string `json:"exclusions"`
	Images      []string `json:"images"`
	Thumbnail   *string  `json:"thumbnail,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Featured    bool     `json:"featured"`
	Active      bool     `json:"active"`
}

// PackageFlags carries the immediate active/featured toggles. Nil means
// "leave unchanged".
type PackageFlags struct {
	Active   *bool `json:"active,omitempty"`
	Featured *bool `json:"featured,omitempty"`
}

// PackagesQuery filters the public catalog listing.
type PackagesQuery struct {
	Destination *string
	Category    *string
	Featured    *bool
	Search      *string
}
