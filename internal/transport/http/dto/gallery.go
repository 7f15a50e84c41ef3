package dto

import "golden_hour/internal/domain/models"

type GalleryInput struct {
	Title       string   `json:"title" validate:"required"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	PhotoIDs    []string `json:"photoIds" validate:"unique"`
}

func (in GalleryInput) ToDetails() models.GalleryDetails {
	return models.GalleryDetails{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		PhotoIDs:    in.PhotoIDs,
	}
}

func (in GalleryInput) ToGallery(id string) models.SpecialMomentGallery {
	return models.SpecialMomentGallery{
		ID:          id,
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		PhotoIDs:    in.PhotoIDs,
	}
}

type CategoryMetaInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
