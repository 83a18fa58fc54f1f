package news

import "time"

// News is a site article. It is publicly visible only while active and
// past its publish date.
type News struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description,omitempty"`
	MainImageID      *int64    `json:"main_image_id,omitempty"`
	Content          string    `json:"content"`
	PublishDate      time.Time `json:"publish_date"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Published reports whether the article is visible on the public site.
func (n *News) Published(now time.Time) bool {
	return n.IsActive && !n.PublishDate.After(now)
}

// NewsImage attaches an uploaded image to an article's gallery.
type NewsImage struct {
	ID      int64 `json:"id"`
	NewsID  int64 `json:"news_id"`
	ImageID int64 `json:"image_id"`
	Order   int   `json:"order"`
}

// NewsFile attaches an uploaded document to an article.
type NewsFile struct {
	ID     int64 `json:"id"`
	NewsID int64 `json:"news_id"`
	FileID int64 `json:"file_id"`
	Order  int   `json:"order"`
}
