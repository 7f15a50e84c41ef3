package dto

import "golden_hour/internal/domain/models"

type PackageInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	IsVideo     bool   `json:"isVideo"`
}

func (in PackageInput) ToDetails() models.PackageDetails {
	return models.PackageDetails{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsVideo:     in.IsVideo,
	}
}
