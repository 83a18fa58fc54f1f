package users

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Email     string `json:"email" validate:"omitempty,max=254"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Role      string `json:"role" validate:"required,oneof=admin content_manager crm_manager"`
}

type UpdateUserRequest struct {
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Email     *string `json:"email,omitempty" validate:"omitempty,max=254"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=admin content_manager crm_manager"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type ListUsersRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Limit    int     `json:"limit" validate:"gte=0,lte=500"`
	Offset   int     `json:"offset" validate:"gte=0"`
}
