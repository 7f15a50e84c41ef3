package remote

import (
	"context"
	"errors"

	"golden_hour/internal/domain/models"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("caller is not authorized")
	ErrUnavailable  = errors.New("backend is not available")
)

// Backend is the remote service boundary of the studio backend. One method
// per remote procedure; implementations must be safe for concurrent use.
type Backend interface {
	// Portfolio media. Public reads, admin writes.
	GetPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhotosByCategory(ctx context.Context, category models.Category) ([]models.Photo, error)
	AddPhoto(ctx context.Context, details models.MediaDetails) (string, error)
	DeletePhoto(ctx context.Context, id string) error
	SetPhotoFeatured(ctx context.Context, id string, isFeatured bool) error

	GetVideos(ctx context.Context) ([]models.Video, error)
	GetVideosByCategory(ctx context.Context, category models.Category) ([]models.Video, error)
	AddVideo(ctx context.Context, details models.MediaDetails) (string, error)
	DeleteVideo(ctx context.Context, id string) error
	SetVideoFeatured(ctx context.Context, id string, isFeatured bool) error

	// Packages. Public reads, admin lifecycle.
	GetAllPackages(ctx context.Context) ([]models.Package, error)
	GetPackages(ctx context.Context, isVideo bool) ([]models.Package, error)
	CreatePackage(ctx context.Context, details models.PackageDetails) (string, error)
	UpdatePackage(ctx context.Context, id string, details models.PackageDetails) error
	DeletePackage(ctx context.Context, id string) error

	// Bookings. Creation is public; everything else admin only.
	CreateBooking(ctx context.Context, req models.BookingRequest) (string, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
	ApproveBooking(ctx context.Context, id string) error
	RejectBooking(ctx context.Context, id string) error
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	AssignPhotographer(ctx context.Context, id, photographer string) error

	// Special moment galleries.
	GetAllSpecialMomentGalleries(ctx context.Context) ([]models.SpecialMomentGallery, error)
	GetSpecialMomentGalleriesByDate(ctx context.Context, date string) ([]models.SpecialMomentGallery, error)
	CreateSpecialMomentGallery(ctx context.Context, details models.GalleryDetails) (string, error)
	UpdateSpecialMomentGallery(ctx context.Context, id string, updated models.SpecialMomentGallery) error

	// Category meta and singleton content.
	GetCategoryMeta(ctx context.Context, category models.Category) (*models.GalleryCategoryMeta, error)
	GetAllCategoryMeta(ctx context.Context) ([]models.CategoryMetaEntry, error)
	UpdateCategoryMeta(ctx context.Context, category models.Category, meta models.GalleryCategoryMeta) error

	GetHomepageContent(ctx context.Context) (models.HomepageContent, error)
	UpdateHomepageContent(ctx context.Context, content models.HomepageContent) error
	GetSitewideContent(ctx context.Context) (models.SitewideContent, error)
	UpdateSitewideContent(ctx context.Context, content models.SitewideContent) error

	// Identity-scoped profile and role lookups.
	GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error
	GetUserProfile(ctx context.Context, user string) (*models.UserProfile, error)
	GetCallerUserRole(ctx context.Context) (models.UserRole, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	AssignCallerUserRole(ctx context.Context, user string, role models.UserRole) error
}
