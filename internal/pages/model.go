package pages

import (
	"time"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// PageKind names one of the three singleton site pages.
type PageKind string

const (
	PageAbout     PageKind = "about"
	PageServices  PageKind = "services"
	PageDocuments PageKind = "documents"
)

// Valid reports whether the kind is one of the known pages.
func (k PageKind) Valid() bool {
	switch k {
	case PageAbout, PageServices, PageDocuments:
		return true
	}
	return false
}

// Page is a singleton: exactly one live instance per kind. A second
// create is refused and delete is never allowed.
type Page struct {
	ID              int64     `json:"id"`
	Kind            PageKind  `json:"kind"`
	Title           string    `json:"title"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Layout selects how a section arranges its text, gallery and files.
type Layout string

const (
	Layout1 Layout = "layout_1"
	Layout2 Layout = "layout_2"
	Layout3 Layout = "layout_3"
	Layout4 Layout = "layout_4"
)

// Section is a content block on one of the singleton pages.
type Section struct {
	ID        int64     `json:"id"`
	PageKind  PageKind  `json:"page_kind"`
	MenuTitle string    `json:"menu_title,omitempty"`
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Content   string    `json:"content,omitempty"`
	Layout    Layout    `json:"layout"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle falls back through the section's naming fields.
func (s *Section) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if s.MenuTitle != "" {
		return s.MenuTitle
	}
	return "untitled"
}

// SectionRef binds an attachment to exactly one section of one page
// kind. The constructor is the only way to build one, so the
// zero-parents and many-parents states cannot be represented.
type SectionRef struct {
	Kind      PageKind `json:"kind"`
	SectionID int64    `json:"section_id"`
}

// NewSectionRef builds a SectionRef from the three optional parent ids
// an attachment payload may carry. Exactly one must be set.
func NewSectionRef(aboutID, serviceID, documentID *int64) (SectionRef, error) {
	var ref SectionRef
	set := 0
	if aboutID != nil {
		ref = SectionRef{Kind: PageAbout, SectionID: *aboutID}
		set++
	}
	if serviceID != nil {
		ref = SectionRef{Kind: PageServices, SectionID: *serviceID}
		set++
	}
	if documentID != nil {
		ref = SectionRef{Kind: PageDocuments, SectionID: *documentID}
		set++
	}
	if set != 1 {
		fe := make(validate.FieldErrors)
		fe.Add(validate.NonFieldKey, "an attachment must reference exactly one section")
		return SectionRef{}, fe
	}
	return ref, nil
}

// SectionImage is an image attached to a section's gallery.
type SectionImage struct {
	ID      int64      `json:"id"`
	Section SectionRef `json:"section"`
	ImageID int64      `json:"image_id"`
	Order   int        `json:"order"`
}

// SectionFile is a document attached to a section.
type SectionFile struct {
	ID      int64      `json:"id"`
	Section SectionRef `json:"section"`
	FileID  int64      `json:"file_id"`
	Order   int        `json:"order"`
}
