package mainpage

import "github.com/ferrumtrans/ferrumtrans/internal/news"

// BlockRequest carries a partial block update. Nil fields stay
// untouched; a field that does not apply to the addressed kind is
// rejected, not ignored.
type BlockRequest struct {
	Title             *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Subtitle          *string `json:"subtitle,omitempty" validate:"omitempty,max=300"`
	Content           *string `json:"content,omitempty"`
	CTAButtonText     *string `json:"cta_button_text,omitempty" validate:"omitempty,max=50"`
	BackgroundImageID *int64  `json:"background_image_id,omitempty"`
	ShowNewsCarousel  *bool   `json:"show_news_carousel,omitempty"`
	NewsCount         *int    `json:"news_count,omitempty" validate:"omitempty,gte=1,lte=20"`
	Diagram1ID        *int64  `json:"diagram_1_id,omitempty"`
	Diagram2ID        *int64  `json:"diagram_2_id,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// AdvantageRequest carries an advantage create or full update.
type AdvantageRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=300"`
	IconID      *int64 `json:"icon_id"`
	Order       int    `json:"order" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// PartnerRequest carries a partner create or full update.
type PartnerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Website  string `json:"website" validate:"omitempty,url,max=200"`
	LogoID   *int64 `json:"logo_id"`
	Order    int    `json:"order" validate:"gte=0"`
	IsActive *bool  `json:"is_active"`
}

// View is the public landing-page composite: the active blocks keyed
// by kind, the sorted active children, and the hero news carousel.
type View struct {
	Blocks     map[BlockKind]Block `json:"blocks"`
	Advantages []Advantage         `json:"advantages"`
	Partners   []Partner           `json:"partners"`
	News       []news.News         `json:"news,omitempty"`
}
