// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "gallery_backend/internal/domain/entity"

// SignupReq represents the request body for the /signup endpoint.
type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// UserRes is the public view of a user. The password hash never leaves the server.
type UserRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: string(u.Role)}
}

// EmailExistsRes answers /email-exists.
type EmailExistsRes struct {
	Exists bool `json:"exists"`
}
