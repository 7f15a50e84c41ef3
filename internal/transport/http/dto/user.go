package dto

import "golden_hour/internal/domain/models"

type ProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (in ProfileInput) ToProfile() models.UserProfile {
	return models.UserProfile{Name: in.Name, Email: in.Email}
}

type AssignRoleInput struct {
	User string          `json:"user" validate:"required"`
	Role models.UserRole `json:"role" validate:"required,oneof=admin user guest"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
