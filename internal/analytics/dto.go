package analytics

// DiagramRequest carries a diagram create or full update.
type DiagramRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	ChartType       string `json:"chart_type" validate:"required,oneof=column pie"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=50"`
	Order           int    `json:"order" validate:"omitempty,gte=0"`
	IsActive        *bool  `json:"is_active"`
}

// CategoryRequest carries a category create or full update.
type CategoryRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Value float64 `json:"value" validate:"gte=0"`
	Color string  `json:"color" validate:"required"`
	Order int     `json:"order" validate:"omitempty,gte=0"`
}
