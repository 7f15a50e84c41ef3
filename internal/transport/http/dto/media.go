package dto

import (
	"encoding/base64"
	"fmt"

	"golden_hour/internal/blob"
	"golden_hour/internal/domain/models"
)

// MediaUploadInput accepts either an already-stored blob by URL or inline
// base64 bytes for upload.
type MediaUploadInput struct {
	Title    string          `json:"title" validate:"required"`
	Category models.Category `json:"category" validate:"required,oneof=weddings preWedding receptions"`
	URL      string          `json:"url,omitempty"`
	Bytes    string          `json:"bytes,omitempty"`
}

func (in MediaUploadInput) ToDetails() (models.MediaDetails, error) {
	details := models.MediaDetails{
		Title:    in.Title,
		Category: in.Category,
	}

	switch {
	case in.URL != "":
		details.Blob = blob.FromURL(in.URL)
	case in.Bytes != "":
		raw, err := base64.StdEncoding.DecodeString(in.Bytes)
		if err != nil {
			return models.MediaDetails{}, fmt.Errorf("invalid media bytes: %w", err)
		}
		details.Blob = blob.FromBytes(raw)
	default:
		return models.MediaDetails{}, fmt.Errorf("either url or bytes is required")
	}

	return details, nil
}

type FeatureToggleInput struct {
	IsFeatured *bool `json:"isFeatured" validate:"required"`
}
