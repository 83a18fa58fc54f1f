package contacts

// PhoneRequest carries a phone create or full update.
type PhoneRequest struct {
	Number      string `json:"number" validate:"required,max=20"`
	Description string `json:"description" validate:"omitempty,max=100"`
	Order       int    `json:"order" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// EmailRequest carries an email create or full update.
type EmailRequest struct {
	Address     string `json:"address" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=100"`
	Order       int    `json:"order" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// AddressRequest carries an address create or full update.
type AddressRequest struct {
	Text        string `json:"text" validate:"required,max=300"`
	Description string `json:"description" validate:"omitempty,max=100"`
	MapLink     string `json:"map_link" validate:"omitempty,url"`
	Order       int    `json:"order" validate:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// SocialMediaRequest carries a social link create or full update.
type SocialMediaRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
	IconID   *int64 `json:"icon_id"`
	Order    int    `json:"order" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"is_active"`
}
