package news

import "time"

// NewsRequest carries an article create or full update. An empty slug
// is auto-generated from the title.
type NewsRequest struct {
	Title            string     `json:"title" validate:"required,max=200"`
	Slug             string     `json:"slug" validate:"omitempty,max=200"`
	ShortDescription string     `json:"short_description" validate:"omitempty,max=300"`
	MainImageID      *int64     `json:"main_image_id"`
	Content          string     `json:"content" validate:"required"`
	PublishDate      *time.Time `json:"publish_date"`
	IsActive         *bool      `json:"is_active"`
}

// ListNewsRequest filters the console article list.
type ListNewsRequest struct {
	IsActive *bool `json:"is_active"`
	Limit    int   `json:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset   int   `json:"offset" validate:"omitempty,gte=0"`
}

// AttachmentRequest links an uploaded image or file to an article.
type AttachmentRequest struct {
	AssetID int64 `json:"asset_id" validate:"required"`
	Order   int   `json:"order" validate:"omitempty,gte=0"`
}
