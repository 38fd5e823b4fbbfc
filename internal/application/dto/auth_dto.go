package dto

import "time"

// SignUpRequest body para POST /api/v1/authentication/sign-up.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // Administrator | Employee; Employee por defecto
}

// SignInRequest body para POST /api/v1/authentication/sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse usuario sin credenciales.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthenticatedUserResponse usuario autenticado con su token.
type AuthenticatedUserResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangeRoleRequest body para PUT /api/v1/users/{id}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}
