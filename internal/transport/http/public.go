package http

import (
	"log/slog"
	"net/http"

	"golden_hour/internal/domain/models"
	"golden_hour/internal/transport/http/dto"
	"golden_hour/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Public read surface. Every handler answers from the cache store through
// the query service; the remote boundary is only reached on a miss.

func (r *Routers) ListPhotos(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("category"); raw != "" {
		category := models.Category(raw)
		if !category.Valid() {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown category"))
		}
		photos, err := r.queries.PhotosByCategory(ctx, category)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(photos))
	}

	if c.QueryParam("featured") == "true" {
		photos, err := r.queries.FeaturedPhotos(ctx)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(photos))
	}

	photos, err := r.queries.Photos(ctx)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(photos))
}

func (r *Routers) ListVideos(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("category"); raw != "" {
		category := models.Category(raw)
		if !category.Valid() {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown category"))
		}
		videos, err := r.queries.VideosByCategory(ctx, category)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(videos))
	}

	if c.QueryParam("featured") == "true" {
		videos, err := r.queries.FeaturedVideos(ctx)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(videos))
	}

	videos, err := r.queries.Videos(ctx)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(videos))
}

func (r *Routers) ListPackages(c echo.Context) error {
	ctx := c.Request().Context()

	switch c.QueryParam("kind") {
	case "":
		packages, err := r.queries.AllPackages(ctx)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(packages))
	case "video":
		packages, err := r.queries.Packages(ctx, true)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(packages))
	case "photo":
		packages, err := r.queries.Packages(ctx, false)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(packages))
	default:
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "kind must be photo or video"))
	}
}

func (r *Routers) ListGalleries(c echo.Context) error {
	ctx := c.Request().Context()

	if date := c.QueryParam("date"); date != "" {
		galleries, err := r.queries.GalleriesByDate(ctx, date)
		if err != nil {
			return r.fail(c, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
	}

	galleries, err := r.queries.Galleries(ctx)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// GetGallery returns a gallery joined with its resolved photos.
func (r *Routers) GetGallery(c echo.Context) error {
	view, err := r.queries.ResolveGallery(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

func (r *Routers) GetHomepageContent(c echo.Context) error {
	content, err := r.queries.HomepageContent(c.Request().Context())
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(content))
}

func (r *Routers) GetSitewideContent(c echo.Context) error {
	content, err := r.queries.SitewideContent(c.Request().Context())
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(content))
}

func (r *Routers) ListCategoryMeta(c echo.Context) error {
	meta, err := r.queries.AllCategoryMeta(c.Request().Context())
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(meta))
}

func (r *Routers) GetCategoryMeta(c echo.Context) error {
	category := models.Category(c.Param("category"))
	if !category.Valid() {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown category"))
	}

	meta, err := r.queries.CategoryMeta(c.Request().Context(), category)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(meta))
}

// CreateBooking is the one public write: anyone can request a booking. The
// record always enters the lifecycle as pending.
func (r *Routers) CreateBooking(c echo.Context) error {
	const op = "http.routers.CreateBooking"

	var req dto.CreateBookingInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.bookings(c).Create(c.Request().Context(), req.ToRequest())
	if err != nil {
		return r.fail(c, err)
	}

	r.log.Info("booking requested",
		slog.String("op", op),
		slog.String("booking_id", id),
	)

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"id": id}))
}

// GetProfile returns the caller's own profile. Absence is a success with a
// null body, not an error.
func (r *Routers) GetProfile(c echo.Context) error {
	caller, snap := r.caller(c)
	if !snap.Authenticated() {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	profile, err := r.queries.Profile(c.Request().Context(), caller, snap.Identity)
	if err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(profile))
}

func (r *Routers) SaveProfile(c echo.Context) error {
	_, snap := r.caller(c)
	if !snap.Authenticated() {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	var req dto.ProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.mutations(c).SaveProfile(c.Request().Context(), snap.Identity, req.ToProfile()); err != nil {
		return r.fail(c, err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}
