package http

import (
	"context"
	"net/http"

	"golden_hour/internal/domain/models"
	"golden_hour/internal/transport/http/dto"
	"golden_hour/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Admin write surface. Every route here sits behind AdminGuard; handlers
// only bind, validate, and hand off to the mutation or booking service,
// which owns the confirm-then-invalidate discipline.

func (r *Routers) UploadPhoto(c echo.Context) error {
	return r.uploadMedia(c, r.mutations(c).AddPhoto)
}

func (r *Routers) UploadVideo(c echo.Context) error {
	return r.uploadMedia(c, r.mutations(c).AddVideo)
}

func (r *Routers) uploadMedia(c echo.Context, add func(context.Context, models.MediaDetails) (string, error)) error {
	var req dto.MediaUploadInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	details, err := req.ToDetails()
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := add(c.Request().Context(), details)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"id": id}))
}

func (r *Routers) DeletePhoto(c echo.Context) error {
	if err := r.mutations(c).DeletePhoto(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) SetPhotoFeatured(c echo.Context) error {
	var req dto.FeatureToggleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.mutations(c).SetPhotoFeatured(c.Request().Context(), c.Param("id"), *req.IsFeatured); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) DeleteVideo(c echo.Context) error {
	if err := r.mutations(c).DeleteVideo(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) SetVideoFeatured(c echo.Context) error {
	var req dto.FeatureToggleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.mutations(c).SetVideoFeatured(c.Request().Context(), c.Param("id"), *req.IsFeatured); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) CreatePackage(c echo.Context) error {
	var req dto.PackageInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.mutations(c).CreatePackage(c.Request().Context(), req.ToDetails())
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"id": id}))
}

func (r *Routers) UpdatePackage(c echo.Context) error {
	var req dto.PackageInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.mutations(c).UpdatePackage(c.Request().Context(), c.Param("id"), req.ToDetails()); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) DeletePackage(c echo.Context) error {
	if err := r.mutations(c).DeletePackage(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ListBookings is the admin view over the lifecycle; the pending queue is
// just a filter on it.
func (r *Routers) ListBookings(c echo.Context) error {
	bookings, err := r.queries.Bookings(c.Request().Context())
	if err != nil {
		return r.fail(c, err)
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := models.BookingStatus(raw)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown booking status"))
		}
		filtered := make([]models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(bookings))
}

func (r *Routers) ApproveBooking(c echo.Context) error {
	if err := r.bookings(c).Approve(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) RejectBooking(c echo.Context) error {
	if err := r.bookings(c).Reject(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UpdateBookingStatus(c echo.Context) error {
	var req dto.UpdateBookingStatusInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.bookings(c).UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) AssignPhotographer(c echo.Context) error {
	var req dto.AssignPhotographerInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.bookings(c).AssignPhotographer(c.Request().Context(), c.Param("id"), req.Photographer); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) CreateGallery(c echo.Context) error {
	var req dto.GalleryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.mutations(c).CreateGallery(c.Request().Context(), req.ToDetails())
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"id": id}))
}

func (r *Routers) UpdateGallery(c echo.Context) error {
	var req dto.GalleryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id := c.Param("id")
	if err := r.mutations(c).UpdateGallery(c.Request().Context(), id, req.ToGallery(id)); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UpdateCategoryMeta(c echo.Context) error {
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown category"))
	}

	var req dto.CategoryMetaInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	meta := models.GalleryCategoryMeta{Name: req.Name, Description: req.Description}
	if err := r.mutations(c).UpdateCategoryMeta(c.Request().Context(), category, meta); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UpdateHomepageContent(c echo.Context) error {
	var content models.HomepageContent
	if err := c.Bind(&content); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.mutations(c).UpdateHomepageContent(c.Request().Context(), content); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) UpdateSitewideContent(c echo.Context) error {
	var content models.SitewideContent
	if err := c.Bind(&content); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.mutations(c).UpdateSitewideContent(c.Request().Context(), content); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

// ListCacheKeys reports what the store currently holds. Diagnostics only;
// the values themselves never leave the gateway.
func (r *Routers) ListCacheKeys(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]any{
		"keys": r.cache.Keys(),
	}))
}

// FlushCache drops the whole store. The next read of every key goes to the
// backend, so this is the escape hatch for backend-side edits that no
// gateway mutation announced.
func (r *Routers) FlushCache(c echo.Context) error {
	r.cache.Flush()
	r.log.Info("cache flushed")
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}

func (r *Routers) AssignRole(c echo.Context) error {
	var req dto.AssignRoleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.mutations(c).AssignRole(c.Request().Context(), req.User, req.Role); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}
