package applications

// CreateApplicationRequest is the payload for a new inquiry, either
// from the public contact form or from the console.
type CreateApplicationRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message" validate:"required,max=1000"`
}

// UpdateApplicationRequest carries a partial update from the console.
type UpdateApplicationRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=100"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Message        *string `json:"message" validate:"omitempty,max=1000"`
	Status         *string `json:"status" validate:"omitempty,oneof=new in_progress processed rejected"`
	ManagerComment *string `json:"manager_comment" validate:"omitempty,max=500"`
}

// ListApplicationsRequest filters the inquiry list.
type ListApplicationsRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=new in_progress processed rejected"`
	Limit  int     `json:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset int     `json:"offset" validate:"omitempty,gte=0"`
}
