package models

import (
	"fmt"

	"golden_hour/internal/blob"
)

type Category string

const (
	CategoryWeddings   Category = "weddings"
	CategoryPreWedding Category = "preWedding"
	CategoryReceptions Category = "receptions"
)

// Categories lists every portfolio category in display order.
func Categories() []Category {
	return []Category{CategoryWeddings, CategoryPreWedding, CategoryReceptions}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWeddings, CategoryPreWedding, CategoryReceptions:
		return true
	}
	return false
}

// Photo is a portfolio photo. The id is assigned by the remote backend and
// immutable once issued.
type Photo struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Blob       *blob.ExternalBlob `json:"blob"`
	IsFeatured bool               `json:"isFeatured"`
	Category   Category           `json:"category"`
}

// Video is a portfolio video clip.
type Video struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Blob       *blob.ExternalBlob `json:"blob"`
	IsFeatured bool               `json:"isFeatured"`
	Category   Category           `json:"category"`
}

// MediaDetails is the admin upload input shared by photos and videos.
type MediaDetails struct {
	Title    string
	Category Category
	Blob     *blob.ExternalBlob
}

func (d MediaDetails) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !d.Category.Valid() {
		return fmt.Errorf("invalid category %q", d.Category)
	}
	if d.Blob == nil {
		return fmt.Errorf("media blob is required")
	}
	return nil
}
