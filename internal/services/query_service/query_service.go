package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golden_hour/internal/cache"
	"golden_hour/internal/domain/models"
	"golden_hour/internal/lib/logger/sl"
	"golden_hour/internal/remote"
)

// ErrNotReady is the stable "no data yet" status reported while the remote
// boundary is not constructed. Consumers render a loading state for it,
// never an empty result.
var ErrNotReady = errors.New("remote backend is not ready")

var ErrGalleryNotFound = errors.New("gallery not found")

// QueryService is the read side of the sync layer. Every read goes through
// the shared cache store; on miss or staleness the remote boundary is
// called once, concurrent readers of one key sharing the in-flight call.
// Queries never retry on their own.
type QueryService struct {
	log     *slog.Logger
	cache   *cache.Store
	backend remote.Backend
}

// NewQueryService wires the service against an injected cache store. A nil
// backend is the unavailable-boundary state: every read reports ErrNotReady
// without touching the cache.
func NewQueryService(log *slog.Logger, store *cache.Store, backend remote.Backend) *QueryService {
	return &QueryService{
		log:     log,
		cache:   store,
		backend: backend,
	}
}

func (s *QueryService) ready() error {
	if s.backend == nil {
		return ErrNotReady
	}
	return nil
}

func (s *QueryService) Photos(ctx context.Context) ([]models.Photo, error) {
	const op = "services.QueryService.Photos"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := cache.FetchAs(ctx, s.cache, cache.KeyPhotos, s.backend.GetPhotos)
	if err != nil {
		s.log.Error("failed to fetch photos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

func (s *QueryService) PhotosByCategory(ctx context.Context, category models.Category) ([]models.Photo, error) {
	const op = "services.QueryService.PhotosByCategory"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%s: invalid category %q", op, category)
	}

	photos, err := cache.FetchAs(ctx, s.cache, cache.PhotosByCategory(category),
		func(ctx context.Context) ([]models.Photo, error) {
			return s.backend.GetPhotosByCategory(ctx, category)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

// FeaturedPhotos filters the cached photo list; it shares the photos key
// with Photos rather than owning a key of its own.
func (s *QueryService) FeaturedPhotos(ctx context.Context) ([]models.Photo, error) {
	photos, err := s.Photos(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

func (s *QueryService) Videos(ctx context.Context) ([]models.Video, error) {
	const op = "services.QueryService.Videos"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	videos, err := cache.FetchAs(ctx, s.cache, cache.KeyVideos, s.backend.GetVideos)
	if err != nil {
		s.log.Error("failed to fetch videos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return videos, nil
}

func (s *QueryService) VideosByCategory(ctx context.Context, category models.Category) ([]models.Video, error) {
	const op = "services.QueryService.VideosByCategory"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%s: invalid category %q", op, category)
	}

	videos, err := cache.FetchAs(ctx, s.cache, cache.VideosByCategory(category),
		func(ctx context.Context) ([]models.Video, error) {
			return s.backend.GetVideosByCategory(ctx, category)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return videos, nil
}

func (s *QueryService) FeaturedVideos(ctx context.Context) ([]models.Video, error) {
	videos, err := s.Videos(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if v.IsFeatured {
			featured = append(featured, v)
		}
	}
	return featured, nil
}

func (s *QueryService) AllPackages(ctx context.Context) ([]models.Package, error) {
	const op = "services.QueryService.AllPackages"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	packages, err := cache.FetchAs(ctx, s.cache, cache.KeyPackages, s.backend.GetAllPackages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return packages, nil
}

func (s *QueryService) Packages(ctx context.Context, isVideo bool) ([]models.Package, error) {
	const op = "services.QueryService.Packages"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	packages, err := cache.FetchAs(ctx, s.cache, cache.PackagesByKind(isVideo),
		func(ctx context.Context) ([]models.Package, error) {
			return s.backend.GetPackages(ctx, isVideo)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return packages, nil
}

func (s *QueryService) Bookings(ctx context.Context) ([]models.Booking, error) {
	const op = "services.QueryService.Bookings"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := cache.FetchAs(ctx, s.cache, cache.KeyBookings, s.backend.GetAllBookings)
	if err != nil {
		s.log.Error("failed to fetch bookings", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return bookings, nil
}

func (s *QueryService) Galleries(ctx context.Context) ([]models.SpecialMomentGallery, error) {
	const op = "services.QueryService.Galleries"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := cache.FetchAs(ctx, s.cache, cache.KeyGalleries, s.backend.GetAllSpecialMomentGalleries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return galleries, nil
}

func (s *QueryService) GalleriesByDate(ctx context.Context, date string) ([]models.SpecialMomentGallery, error) {
	const op = "services.QueryService.GalleriesByDate"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := cache.FetchAs(ctx, s.cache, cache.GalleriesByDate(date),
		func(ctx context.Context) ([]models.SpecialMomentGallery, error) {
			return s.backend.GetSpecialMomentGalleriesByDate(ctx, date)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return galleries, nil
}

// GalleryView is a gallery joined with the photos it references. Dangling
// photo ids are omitted; the backend never enforced their existence.
type GalleryView struct {
	Gallery models.SpecialMomentGallery `json:"gallery"`
	Photos  []models.Photo              `json:"photos"`
}

func (s *QueryService) ResolveGallery(ctx context.Context, id string) (*GalleryView, error) {
	const op = "services.QueryService.ResolveGallery"

	galleries, err := s.Galleries(ctx)
	if err != nil {
		return nil, err
	}

	var gallery *models.SpecialMomentGallery
	for i := range galleries {
		if galleries[i].ID == id {
			gallery = &galleries[i]
			break
		}
	}
	if gallery == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrGalleryNotFound)
	}

	photos, err := s.Photos(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Photo, len(photos))
	for _, p := range photos {
		byID[p.ID] = p
	}

	resolved := make([]models.Photo, 0, len(gallery.PhotoIDs))
	for _, photoID := range gallery.PhotoIDs {
		p, ok := byID[photoID]
		if !ok {
			s.log.Debug("gallery references missing photo",
				slog.String("gallery_id", gallery.ID),
				slog.String("photo_id", photoID),
			)
			continue
		}
		resolved = append(resolved, p)
	}

	return &GalleryView{Gallery: *gallery, Photos: resolved}, nil
}

func (s *QueryService) HomepageContent(ctx context.Context) (models.HomepageContent, error) {
	const op = "services.QueryService.HomepageContent"

	if err := s.ready(); err != nil {
		return models.HomepageContent{}, fmt.Errorf("%s: %w", op, err)
	}

	content, err := cache.FetchAs(ctx, s.cache, cache.KeyHomepageContent, s.backend.GetHomepageContent)
	if err != nil {
		return models.HomepageContent{}, fmt.Errorf("%s: %w", op, err)
	}
	return content, nil
}

func (s *QueryService) SitewideContent(ctx context.Context) (models.SitewideContent, error) {
	const op = "services.QueryService.SitewideContent"

	if err := s.ready(); err != nil {
		return models.SitewideContent{}, fmt.Errorf("%s: %w", op, err)
	}

	content, err := cache.FetchAs(ctx, s.cache, cache.KeySitewideContent, s.backend.GetSitewideContent)
	if err != nil {
		return models.SitewideContent{}, fmt.Errorf("%s: %w", op, err)
	}
	return content, nil
}

func (s *QueryService) AllCategoryMeta(ctx context.Context) ([]models.CategoryMetaEntry, error) {
	const op = "services.QueryService.AllCategoryMeta"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	meta, err := cache.FetchAs(ctx, s.cache, cache.KeyCategoryMeta, s.backend.GetAllCategoryMeta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meta, nil
}

func (s *QueryService) CategoryMeta(ctx context.Context, category models.Category) (*models.GalleryCategoryMeta, error) {
	const op = "services.QueryService.CategoryMeta"

	if err := s.ready(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%s: invalid category %q", op, category)
	}

	meta, err := cache.FetchAs(ctx, s.cache, cache.CategoryMetaFor(category),
		func(ctx context.Context) (*models.GalleryCategoryMeta, error) {
			return s.backend.GetCategoryMeta(ctx, category)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meta, nil
}

// Profile reads the caller-owned profile through the caller's own backend
// view. Absence (remote not-found) is a valid nil result, cached like any
// other confirmed value; it is expected for fresh identities and is never
// retried.
func (s *QueryService) Profile(ctx context.Context, caller remote.Backend, identityID string) (*models.UserProfile, error) {
	const op = "services.QueryService.Profile"

	if caller == nil || identityID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotReady)
	}

	profile, err := cache.FetchAs(ctx, s.cache, cache.ProfileFor(identityID),
		func(ctx context.Context) (*models.UserProfile, error) {
			profile, err := caller.GetCallerUserProfile(ctx)
			if errors.Is(err, remote.ErrNotFound) {
				return nil, nil
			}
			return profile, err
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// IsAdmin resolves the caller's role through the remote lookup. The result
// is an authorization fact with a short effective life: it is cached only
// until the next role-affecting mutation invalidates it.
func (s *QueryService) IsAdmin(ctx context.Context, caller remote.Backend, identityID string) (bool, error) {
	const op = "services.QueryService.IsAdmin"

	if caller == nil || identityID == "" {
		return false, nil
	}

	isAdmin, err := cache.FetchAs(ctx, s.cache, cache.IsAdminFor(identityID),
		func(ctx context.Context) (bool, error) {
			return caller.IsCallerAdmin(ctx)
		})
	if err != nil {
		s.log.Warn("role lookup failed", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return isAdmin, nil
}
