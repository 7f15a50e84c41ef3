package services

import (
	"context"
	"fmt"
	"log/slog"

	"golden_hour/internal/cache"
	"golden_hour/internal/domain/models"
	"golden_hour/internal/lib/logger/sl"
	"golden_hour/internal/remote"
)

// MutationService is the write side of the sync layer for everything except
// the booking lifecycle. Every write calls the remote boundary first and
// only after confirmation marks the affected cache keys stale; there are no
// optimistic updates. A failed write leaves the cache byte-for-byte as it
// was and returns the wrapped error to the caller.
//
// The service is cheap to construct per caller: the backend carries the
// caller's credentials while the cache store is the shared one.
type MutationService struct {
	log     *slog.Logger
	cache   *cache.Store
	backend remote.Backend
}

func NewMutationService(log *slog.Logger, store *cache.Store, backend remote.Backend) *MutationService {
	return &MutationService{
		log:     log,
		cache:   store,
		backend: backend,
	}
}

func (s *MutationService) AddPhoto(ctx context.Context, details models.MediaDetails) (string, error) {
	const op = "services.MutationService.AddPhoto"

	if err := details.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.backend.AddPhoto(ctx, details)
	if err != nil {
		s.log.Error("failed to add photo", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPhotos.Family())

	s.log.Info("photo added", slog.String("id", id), slog.String("category", string(details.Category)))
	return id, nil
}

func (s *MutationService) DeletePhoto(ctx context.Context, id string) error {
	const op = "services.MutationService.DeletePhoto"

	if err := s.backend.DeletePhoto(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPhotos.Family())
	return nil
}

func (s *MutationService) SetPhotoFeatured(ctx context.Context, id string, isFeatured bool) error {
	const op = "services.MutationService.SetPhotoFeatured"

	if err := s.backend.SetPhotoFeatured(ctx, id, isFeatured); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPhotos.Family())
	return nil
}

func (s *MutationService) AddVideo(ctx context.Context, details models.MediaDetails) (string, error) {
	const op = "services.MutationService.AddVideo"

	if err := details.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.backend.AddVideo(ctx, details)
	if err != nil {
		s.log.Error("failed to add video", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyVideos.Family())

	s.log.Info("video added", slog.String("id", id), slog.String("category", string(details.Category)))
	return id, nil
}

func (s *MutationService) DeleteVideo(ctx context.Context, id string) error {
	const op = "services.MutationService.DeleteVideo"

	if err := s.backend.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyVideos.Family())
	return nil
}

func (s *MutationService) SetVideoFeatured(ctx context.Context, id string, isFeatured bool) error {
	const op = "services.MutationService.SetVideoFeatured"

	if err := s.backend.SetVideoFeatured(ctx, id, isFeatured); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyVideos.Family())
	return nil
}

func (s *MutationService) CreatePackage(ctx context.Context, details models.PackageDetails) (string, error) {
	const op = "services.MutationService.CreatePackage"

	if err := details.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.backend.CreatePackage(ctx, details)
	if err != nil {
		s.log.Error("failed to create package", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPackages.Family())

	s.log.Info("package created", slog.String("id", id), slog.String("name", details.Name))
	return id, nil
}

func (s *MutationService) UpdatePackage(ctx context.Context, id string, details models.PackageDetails) error {
	const op = "services.MutationService.UpdatePackage"

	if err := details.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.UpdatePackage(ctx, id, details); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPackages.Family())
	return nil
}

func (s *MutationService) DeletePackage(ctx context.Context, id string) error {
	const op = "services.MutationService.DeletePackage"

	if err := s.backend.DeletePackage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyPackages.Family())
	return nil
}

func (s *MutationService) CreateGallery(ctx context.Context, details models.GalleryDetails) (string, error) {
	const op = "services.MutationService.CreateGallery"

	if err := details.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.backend.CreateSpecialMomentGallery(ctx, details)
	if err != nil {
		s.log.Error("failed to create gallery", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyGalleries.Family())

	s.log.Info("special moment gallery created", slog.String("id", id))
	return id, nil
}

func (s *MutationService) UpdateGallery(ctx context.Context, id string, updated models.SpecialMomentGallery) error {
	const op = "services.MutationService.UpdateGallery"

	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.UpdateSpecialMomentGallery(ctx, id, updated); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyGalleries.Family())
	return nil
}

func (s *MutationService) UpdateCategoryMeta(ctx context.Context, category models.Category, meta models.GalleryCategoryMeta) error {
	const op = "services.MutationService.UpdateCategoryMeta"

	if !category.Valid() {
		return fmt.Errorf("%s: invalid category %q", op, category)
	}

	if err := s.backend.UpdateCategoryMeta(ctx, category, meta); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.InvalidateFamily(cache.KeyCategoryMeta.Family())
	return nil
}

func (s *MutationService) UpdateHomepageContent(ctx context.Context, content models.HomepageContent) error {
	const op = "services.MutationService.UpdateHomepageContent"

	if err := s.backend.UpdateHomepageContent(ctx, content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyHomepageContent)
	return nil
}

func (s *MutationService) UpdateSitewideContent(ctx context.Context, content models.SitewideContent) error {
	const op = "services.MutationService.UpdateSitewideContent"

	if err := s.backend.UpdateSitewideContent(ctx, content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeySitewideContent)
	return nil
}

// SaveProfile saves the caller's own profile and invalidates only that
// caller's cached profile.
func (s *MutationService) SaveProfile(ctx context.Context, identityID string, profile models.UserProfile) error {
	const op = "services.MutationService.SaveProfile"

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.backend.SaveCallerUserProfile(ctx, profile); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.ProfileFor(identityID))
	return nil
}

// AssignRole grants or revokes a role and drops the target's cached
// authorization fact so the next guard pass re-resolves it.
func (s *MutationService) AssignRole(ctx context.Context, user string, role models.UserRole) error {
	const op = "services.MutationService.AssignRole"

	if !role.Valid() {
		return fmt.Errorf("%s: invalid role %q", op, role)
	}

	if err := s.backend.AssignCallerUserRole(ctx, user, role); err != nil {
		s.log.Error("failed to assign role", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.IsAdminFor(user))

	s.log.Info("role assigned", slog.String("user", user), slog.String("role", string(role)))
	return nil
}
