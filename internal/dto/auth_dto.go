package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest creates a new account. Admin-only; the role is fixed at
// creation and cannot be changed through normal flows.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=admin staff visitor visitor-staff"`
}

// VerifyResponse echoes the verified identity claim.
type VerifyResponse struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
