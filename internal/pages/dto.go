package pages

// PageRequest carries a singleton page bootstrap or update.
type PageRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	MetaTitle       string `json:"meta_title" validate:"omitempty,max=200"`
	MetaDescription string `json:"meta_description" validate:"omitempty,max=500"`
}

// SectionRequest carries a section create or full update.
type SectionRequest struct {
	MenuTitle string `json:"menu_title" validate:"omitempty,max=100"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	Subtitle  string `json:"subtitle" validate:"omitempty,max=300"`
	Content   string `json:"content"`
	Layout    string `json:"layout" validate:"omitempty,oneof=layout_1 layout_2 layout_3 layout_4"`
	Order     int    `json:"order" validate:"omitempty,gte=0"`
	IsActive  *bool  `json:"is_active"`
}

// SectionAttachmentRequest carries the three optional parent ids of a
// polymorphic attachment payload plus the asset being attached. The
// service collapses the parents into a SectionRef, rejecting zero or
// multiple.
type SectionAttachmentRequest struct {
	AboutSectionID    *int64 `json:"about_section_id"`
	ServiceSectionID  *int64 `json:"service_section_id"`
	DocumentSectionID *int64 `json:"document_section_id"`
	AssetID           int64  `json:"asset_id" validate:"required"`
	Order             int    `json:"order" validate:"omitempty,gte=0"`
}
