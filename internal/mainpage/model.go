package mainpage

import "time"

// BlockKind names one of the fixed landing-page blocks. Every kind is
// a singleton: the migration seeds exactly one row per kind, and the
// API only ever reads and updates them.
type BlockKind string

const (
	BlockHero       BlockKind = "hero"
	BlockAbout      BlockKind = "about"
	BlockAdvantages BlockKind = "advantages"
	BlockAnalytics  BlockKind = "analytics"
	BlockPartners   BlockKind = "partners"
	BlockContacts   BlockKind = "contacts"
)

// Valid reports whether the kind is one of the known blocks.
func (k BlockKind) Valid() bool {
	switch k {
	case BlockHero, BlockAbout, BlockAdvantages, BlockAnalytics, BlockPartners, BlockContacts:
		return true
	}
	return false
}

// Hero news carousel bounds.
const (
	NewsCountDefault = 5
	NewsCountMin     = 1
	NewsCountMax     = 20
)

// Block is one landing-page block. The kind decides which of the
// optional fields apply: the hero block carries the background image
// and news carousel settings, the analytics block references two
// diagrams, the hero and contacts blocks carry a call-to-action label.
type Block struct {
	ID                int64     `json:"id"`
	Kind              BlockKind `json:"kind"`
	Title             string    `json:"title,omitempty"`
	Subtitle          string    `json:"subtitle,omitempty"`
	Content           string    `json:"content,omitempty"`
	CTAButtonText     string    `json:"cta_button_text,omitempty"`
	BackgroundImageID *int64    `json:"background_image_id,omitempty"`
	ShowNewsCarousel  bool      `json:"show_news_carousel,omitempty"`
	NewsCount         int       `json:"news_count,omitempty"`
	Diagram1ID        *int64    `json:"diagram_1_id,omitempty"`
	Diagram2ID        *int64    `json:"diagram_2_id,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Advantage is one sortable entry in the advantages list.
type Advantage struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconID      *int64    `json:"icon_id,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Partner is one entry in the partner logo carousel.
type Partner struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	LogoID    *int64    `json:"logo_id,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
