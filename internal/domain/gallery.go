package domain

import (
	"io"
	"time"
)

// GalleryImage is an uploaded image. URL is server-assigned after upload;
// Category is the sole filter dimension; Order is the display sort key.
type GalleryImage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Caption     *string   `json:"caption,omitempty"`
	Destination *string   `json:"destination,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GalleryMeta is the metadata part of an upload, and the full body of a
// metadata-only edit.
type GalleryMeta struct {
	Category    string  `json:"category"`
	Caption     *string `json:"caption,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Order       int     `json:"order"`
}

// GalleryUpload pairs the image content with its metadata for the multipart
// upload. Size and ContentType are validated client-side before any I/O.
type GalleryUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
	Meta        GalleryMeta
}

// BulkResult is the per-item outcome of a bulk gallery delete. A nil Err
// means the deletion succeeded.
type BulkResult struct {
	ID  string
	Err error
}
