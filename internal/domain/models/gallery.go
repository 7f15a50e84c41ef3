package models

import "fmt"

// SpecialMomentGallery is a curated photo collection. PhotoIDs reference
// portfolio photos; the backend does not enforce their existence, so
// consumers must tolerate dangling ids.
type SpecialMomentGallery struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	PhotoIDs    []string `json:"photoIds"`
}

func (g SpecialMomentGallery) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("title is required")
	}
	seen := make(map[string]struct{}, len(g.PhotoIDs))
	for _, id := range g.PhotoIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate photo id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// GalleryDetails is the creation input for a special moment gallery.
type GalleryDetails struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	PhotoIDs    []string `json:"photoIds"`
}

func (d GalleryDetails) Validate() error {
	return SpecialMomentGallery{
		Title:    d.Title,
		PhotoIDs: d.PhotoIDs,
	}.Validate()
}

// GalleryCategoryMeta is the per-category name/description override shown on
// the portfolio pages.
type GalleryCategoryMeta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryMetaEntry pairs a category with its meta, mirroring the backend's
// getAllCategoryMeta result.
type CategoryMetaEntry struct {
	Category Category            `json:"category"`
	Meta     GalleryCategoryMeta `json:"meta"`
}
