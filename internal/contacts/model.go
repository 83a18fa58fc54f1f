package contacts

import "time"

// Phone is a company phone number shown on the contacts page.
type Phone struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Email is a company contact address.
type Email struct {
	ID          int64     `json:"id"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Address is a company location with an optional map link.
type Address struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description,omitempty"`
	MapLink     string    `json:"map_link,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SocialMedia is a link to a company profile on a social platform.
// The icon references an uploaded image by id.
type SocialMedia struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	IconID    *int64    `json:"icon_id,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
