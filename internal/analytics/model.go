package analytics

import "time"

// MaxActiveDiagrams caps how many diagrams may be live on the site at
// once, system-wide.
const MaxActiveDiagrams = 2

// ChartType selects the rendering style for a diagram.
type ChartType string

const (
	ChartColumn ChartType = "column"
	ChartPie    ChartType = "pie"
)

// Diagram is a business-analytics chart shown on the public site.
type Diagram struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ChartType       ChartType `json:"chart_type"`
	MeasurementUnit string    `json:"measurement_unit"`
	Order           int       `json:"order"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Category is a labelled slice of a diagram. Percentage is derived
// from the sibling values at read time, never stored.
type Category struct {
	ID         int64   `json:"id"`
	DiagramID  int64   `json:"diagram_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Order      int     `json:"order"`
	Percentage float64 `json:"percentage"`
}

// withPercentages fills the derived share of each category.
func withPercentages(categories []Category) []Category {
	var total float64
	for _, c := range categories {
		total += c.Value
	}
	if total == 0 {
		return categories
	}
	for i := range categories {
		categories[i].Percentage = categories[i].Value / total * 100
	}
	return categories
}
