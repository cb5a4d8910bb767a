package contract

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Perms     int64  `json:"permissions"`
	Suspended *bool  `json:"suspended,omitempty"` // Req (Manage Users)
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateUserRequest struct {
	Sub      string `json:"sub" validate:"required,uuid4"`
	Username string `json:"username" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=2,max=80"`
	Perms     *int64  `json:"perms" validate:"omitempty,min=0"`
	Suspended *bool   `json:"suspended" validate:"omitempty"`
}
