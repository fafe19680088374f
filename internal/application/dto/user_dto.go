package dto

import "time"

// RegisterRequest entrada para registrar un usuario (solo admin / super_admin).
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required,max=200"`
	Designation string `json:"designation"`
	Role        string `json:"role" validate:"required,oneof=super_admin admin approval account storekeeper staff"`
}

// UpdateUserRequest cambios sobre un usuario existente; campos nil no se tocan.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	Role        *string `json:"role"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Designation string    `json:"designation,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
