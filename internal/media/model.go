package media

import "time"

// Image is the metadata record of an uploaded picture. Width, height
// and byte size are cached once after the binary is known to be on
// storage; an unreadable binary leaves them nil.
type Image struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	AltText   string    `json:"alt_text,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	FileSize  *int64    `json:"file_size,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// File is the metadata record of an uploaded document.
type File struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	FileSize  *int64    `json:"file_size,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
