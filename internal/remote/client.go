package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golden_hour/internal/domain/models"
)

const defaultTimeout = 30 * time.Second

// Client is the HTTP implementation of Backend. Caller identity travels as a
// bearer token; WithCaller derives a per-caller view of the same client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithCaller returns a copy of the client authenticated as the given caller.
// The zero token is the anonymous caller.
func (c *Client) WithCaller(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	reqURL := c.baseURL + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// idResponse carries the backend-assigned id of a created resource.
type idResponse struct {
	ID string `json:"id"`
}

func (c *Client) create(ctx context.Context, path string, in any) (string, error) {
	var resp idResponse
	if err := c.do(ctx, http.MethodPost, path, in, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) GetPhotos(ctx context.Context) ([]models.Photo, error) {
	var out []models.Photo
	err := c.do(ctx, http.MethodGet, "/photos", nil, &out)
	return out, err
}

func (c *Client) GetPhotosByCategory(ctx context.Context, category models.Category) ([]models.Photo, error) {
	var out []models.Photo
	err := c.do(ctx, http.MethodGet, "/photos?category="+url.QueryEscape(string(category)), nil, &out)
	return out, err
}

func (c *Client) AddPhoto(ctx context.Context, details models.MediaDetails) (string, error) {
	return c.create(ctx, "/photos", mediaPayload(details))
}

func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/photos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SetPhotoFeatured(ctx context.Context, id string, isFeatured bool) error {
	return c.do(ctx, http.MethodPut, "/photos/"+url.PathEscape(id)+"/featured",
		map[string]bool{"isFeatured": isFeatured}, nil)
}

func (c *Client) GetVideos(ctx context.Context) ([]models.Video, error) {
	var out []models.Video
	err := c.do(ctx, http.MethodGet, "/videos", nil, &out)
	return out, err
}

func (c *Client) GetVideosByCategory(ctx context.Context, category models.Category) ([]models.Video, error) {
	var out []models.Video
	err := c.do(ctx, http.MethodGet, "/videos?category="+url.QueryEscape(string(category)), nil, &out)
	return out, err
}

func (c *Client) AddVideo(ctx context.Context, details models.MediaDetails) (string, error) {
	return c.create(ctx, "/videos", mediaPayload(details))
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/videos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SetVideoFeatured(ctx context.Context, id string, isFeatured bool) error {
	return c.do(ctx, http.MethodPut, "/videos/"+url.PathEscape(id)+"/featured",
		map[string]bool{"isFeatured": isFeatured}, nil)
}

func (c *Client) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	err := c.do(ctx, http.MethodGet, "/packages", nil, &out)
	return out, err
}

func (c *Client) GetPackages(ctx context.Context, isVideo bool) ([]models.Package, error) {
	var out []models.Package
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/packages?isVideo=%t", isVideo), nil, &out)
	return out, err
}

func (c *Client) CreatePackage(ctx context.Context, details models.PackageDetails) (string, error) {
	return c.create(ctx, "/packages", details)
}

func (c *Client) UpdatePackage(ctx context.Context, id string, details models.PackageDetails) error {
	return c.do(ctx, http.MethodPut, "/packages/"+url.PathEscape(id), details, nil)
}

func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/packages/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (string, error) {
	return c.create(ctx, "/bookings", req)
}

func (c *Client) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := c.do(ctx, http.MethodGet, "/bookings", nil, &out)
	return out, err
}

func (c *Client) ApproveBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/approve", nil, nil)
}

func (c *Client) RejectBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/reject", nil, nil)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id)+"/status",
		map[string]models.BookingStatus{"status": status}, nil)
}

func (c *Client) AssignPhotographer(ctx context.Context, id, photographer string) error {
	return c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id)+"/photographer",
		map[string]string{"photographer": photographer}, nil)
}

func (c *Client) GetAllSpecialMomentGalleries(ctx context.Context) ([]models.SpecialMomentGallery, error) {
	var out []models.SpecialMomentGallery
	err := c.do(ctx, http.MethodGet, "/special-moments", nil, &out)
	return out, err
}

func (c *Client) GetSpecialMomentGalleriesByDate(ctx context.Context, date string) ([]models.SpecialMomentGallery, error) {
	var out []models.SpecialMomentGallery
	err := c.do(ctx, http.MethodGet, "/special-moments?date="+url.QueryEscape(date), nil, &out)
	return out, err
}

func (c *Client) CreateSpecialMomentGallery(ctx context.Context, details models.GalleryDetails) (string, error) {
	return c.create(ctx, "/special-moments", details)
}

func (c *Client) UpdateSpecialMomentGallery(ctx context.Context, id string, updated models.SpecialMomentGallery) error {
	return c.do(ctx, http.MethodPut, "/special-moments/"+url.PathEscape(id), updated, nil)
}

func (c *Client) GetCategoryMeta(ctx context.Context, category models.Category) (*models.GalleryCategoryMeta, error) {
	var out models.GalleryCategoryMeta
	err := c.do(ctx, http.MethodGet, "/category-meta/"+url.PathEscape(string(category)), nil, &out)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAllCategoryMeta(ctx context.Context) ([]models.CategoryMetaEntry, error) {
	var out []models.CategoryMetaEntry
	err := c.do(ctx, http.MethodGet, "/category-meta", nil, &out)
	return out, err
}

func (c *Client) UpdateCategoryMeta(ctx context.Context, category models.Category, meta models.GalleryCategoryMeta) error {
	return c.do(ctx, http.MethodPut, "/category-meta/"+url.PathEscape(string(category)), meta, nil)
}

func (c *Client) GetHomepageContent(ctx context.Context) (models.HomepageContent, error) {
	var out models.HomepageContent
	err := c.do(ctx, http.MethodGet, "/content/homepage", nil, &out)
	return out, err
}

func (c *Client) UpdateHomepageContent(ctx context.Context, content models.HomepageContent) error {
	return c.do(ctx, http.MethodPut, "/content/homepage", content, nil)
}

func (c *Client) GetSitewideContent(ctx context.Context) (models.SitewideContent, error) {
	var out models.SitewideContent
	err := c.do(ctx, http.MethodGet, "/content/sitewide", nil, &out)
	return out, err
}

func (c *Client) UpdateSitewideContent(ctx context.Context, content models.SitewideContent) error {
	return c.do(ctx, http.MethodPut, "/content/sitewide", content, nil)
}

func (c *Client) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, http.MethodGet, "/profile", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	return c.do(ctx, http.MethodPut, "/profile", profile, nil)
}

func (c *Client) GetUserProfile(ctx context.Context, user string) (*models.UserProfile, error) {
	var out models.UserProfile
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(user)+"/profile", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	var out struct {
		Role models.UserRole `json:"role"`
	}
	err := c.do(ctx, http.MethodGet, "/role", nil, &out)
	return out.Role, err
}

func (c *Client) IsCallerAdmin(ctx context.Context) (bool, error) {
	role, err := c.GetCallerUserRole(ctx)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

func (c *Client) AssignCallerUserRole(ctx context.Context, user string, role models.UserRole) error {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(user)+"/role",
		map[string]models.UserRole{"role": role}, nil)
}

// mediaPayload serializes upload input. URL-backed blobs travel by
// reference; byte-backed blobs are inlined by the blob's JSON encoding.
func mediaPayload(details models.MediaDetails) map[string]any {
	return map[string]any{
		"title":    details.Title,
		"category": details.Category,
		"blob":     details.Blob,
	}
}
