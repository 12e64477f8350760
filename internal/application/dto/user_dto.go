package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"notblank,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin vendedor"`
}

// UpdateUserRequest entrada para actualizar un usuario. Password vacío conserva la actual.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"notblank,max=50"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin vendedor"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y datos básicos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse identidad contenida en un token válido.
type VerifyResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
