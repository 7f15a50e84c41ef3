package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golden_hour/internal/cache"
	"golden_hour/internal/identity"
	"golden_hour/internal/lib/jwt"
	"golden_hour/internal/lib/logger/sl"
	"golden_hour/internal/remote"
	"golden_hour/internal/repository"
	"golden_hour/internal/services/authz"
	bookingsvc "golden_hour/internal/services/booking_service"
	mutationsvc "golden_hour/internal/services/mutation_service"
	querysvc "golden_hour/internal/services/query_service"
	"golden_hour/internal/transport/http/dto"
	"golden_hour/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
)

// Routers holds the handlers and the per-caller wiring of the sync layer.
// The cache store and query service are shared across callers; mutation and
// booking services are derived per request so writes travel with the
// caller's credentials.
type Routers struct {
	log      *slog.Logger
	cache    *cache.Store
	queries  *querysvc.QueryService
	backend  *remote.Client
	sessions repository.SessionRepository

	secret      []byte
	tokenTTL    time.Duration
	refreshTTL  time.Duration
	redirectTTL time.Duration

	// Guards expire with the redirect flag so anonymous probing of the
	// admin surface cannot grow the set without bound.
	mu     sync.Mutex
	guards *gocache.Cache
}

func NewRouter(
	log *slog.Logger,
	store *cache.Store,
	queries *querysvc.QueryService,
	backend *remote.Client,
	sessions repository.SessionRepository,
	secret []byte,
	tokenTTL, refreshTTL, redirectTTL time.Duration,
) *Routers {
	return &Routers{
		log:         log,
		cache:       store,
		queries:     queries,
		backend:     backend,
		sessions:    sessions,
		secret:      secret,
		tokenTTL:    tokenTTL,
		refreshTTL:  refreshTTL,
		redirectTTL: redirectTTL,
		guards:      gocache.New(redirectTTL, redirectTTL),
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// caller returns the caller-scoped backend view and identity snapshot.
func (r *Routers) caller(c echo.Context) (*remote.Client, identity.Snapshot) {
	token := bearerToken(c)
	provider := identity.TokenProvider{Token: token, Secret: r.secret}
	snap := provider.Current(c.Request().Context())

	if r.backend == nil {
		return nil, snap
	}
	return r.backend.WithCaller(token), snap
}

func (r *Routers) mutations(c echo.Context) *mutationsvc.MutationService {
	caller, _ := r.caller(c)
	return mutationsvc.NewMutationService(r.log, r.cache, caller)
}

func (r *Routers) bookings(c echo.Context) *bookingsvc.BookingService {
	caller, _ := r.caller(c)
	return bookingsvc.NewBookingService(r.log, r.cache, caller)
}

// sessionID returns the browser session identifier, creating one on first
// contact. The guard's one-shot redirect is tracked against it.
func (r *Routers) sessionID(c echo.Context) string {
	sess, err := session.Get("session", c)
	if err != nil {
		return uuid.NewString()
	}

	if sid, ok := sess.Values["sid"].(string); ok && sid != "" {
		return sid
	}

	sid := uuid.NewString()
	sess.Values["sid"] = sid
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to persist session", sl.Err(err))
	}
	return sid
}

func (r *Routers) guardFor(sessionID string) *authz.Guard {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.guards.Get(sessionID); ok {
		return cached.(*authz.Guard)
	}

	guard := authz.NewGuard(r.log, r.queries, nil)
	r.guards.SetDefault(sessionID, guard)
	return guard
}

// AdminGuard is the HTTP adaptation of the authorization state machine:
// loading states answer 503, the one-shot redirect becomes a 302 to the
// public root followed by plain 401s, non-admins get the denial body, and
// protected handlers run only in the admin state.
func (r *Routers) AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		caller, snap := r.caller(c)

		if caller == nil {
			snap.Status = identity.StatusInitializing
		}

		sid := r.sessionID(c)
		guard := r.guardFor(sid)

		state, decision := guard.Evaluate(ctx, caller, snap)

		switch decision {
		case authz.DecisionLoading:
			c.Response().Header().Set("Retry-After", "1")
			return c.JSON(http.StatusServiceUnavailable, response.ErrBackendNotReady)

		case authz.DecisionRedirect, authz.DecisionNone:
			// The in-process guard already collapses repeats; the redis flag
			// keeps the one-shot across gateway replicas.
			first, err := r.sessions.MarkRedirected(ctx, sid, r.redirectTTL)
			if err != nil {
				r.log.Warn("redirect flag lookup failed", sl.Err(err))
			}
			if decision == authz.DecisionRedirect && first {
				return c.Redirect(http.StatusFound, "/")
			}
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)

		case authz.DecisionDeny:
			r.log.Info("admin access denied",
				slog.String("identity", snap.Identity),
				slog.String("state", state.String()),
			)
			return c.JSON(http.StatusForbidden, response.ErrAccessDenied)
		}

		return next(c)
	}
}

// fail maps service errors onto the HTTP surface. Query errors were already
// recovered into statuses by the services; everything else is the remote
// boundary failing.
func (r *Routers) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, querysvc.ErrNotReady):
		return c.JSON(http.StatusServiceUnavailable, response.ErrBackendNotReady)
	case errors.Is(err, querysvc.ErrGalleryNotFound), errors.Is(err, remote.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", err.Error()))
	case errors.Is(err, remote.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, response.ErrAccessDenied)
	case errors.Is(err, bookingsvc.ErrInvalidBooking), errors.Is(err, bookingsvc.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	default:
		r.log.Error("remote call failed", sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrBackendFailure)
	}
}

// CreateSession exchanges an identity-provider bearer token for a gateway
// session: an access token plus a redis-whitelisted refresh token.
func (r *Routers) CreateSession(c echo.Context) error {
	const op = "http.routers.CreateSession"

	_, snap := r.caller(c)
	if !snap.Authenticated() {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	access, err := jwt.NewToken(snap.Identity, r.secret, r.tokenTTL)
	if err != nil {
		r.log.Error("failed to issue access token", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrBackendFailure)
	}

	refresh := uuid.NewString()
	if err := r.sessions.SaveRefreshToken(c.Request().Context(), snap.Identity, refresh, r.refreshTTL); err != nil {
		r.log.Error("failed to store refresh token", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrBackendFailure)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	}))
}

// RefreshSession rotates the refresh token and issues a new access token.
func (r *Routers) RefreshSession(c echo.Context) error {
	const op = "http.routers.RefreshSession"

	var req dto.RefreshInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	_, snap := r.caller(c)
	if !snap.Authenticated() {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	ctx := c.Request().Context()

	known, err := r.sessions.GetRefreshToken(ctx, snap.Identity, req.RefreshToken)
	if err != nil || !known {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	if err := r.sessions.DeleteRefreshToken(ctx, snap.Identity, req.RefreshToken); err != nil {
		r.log.Warn("failed to rotate refresh token", slog.String("op", op), sl.Err(err))
	}

	access, err := jwt.NewToken(snap.Identity, r.secret, r.tokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrBackendFailure)
	}

	refresh := uuid.NewString()
	if err := r.sessions.SaveRefreshToken(ctx, snap.Identity, refresh, r.refreshTTL); err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrBackendFailure)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	}))
}

// Logout drops every session of the caller and their cached profile.
func (r *Routers) Logout(c echo.Context) error {
	_, snap := r.caller(c)
	if !snap.Authenticated() {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
	}

	if err := r.sessions.DeleteAllSessions(c.Request().Context(), snap.Identity); err != nil {
		r.log.Warn("failed to drop sessions", sl.Err(err))
	}

	r.cache.Invalidate(cache.ProfileFor(snap.Identity), cache.IsAdminFor(snap.Identity))

	return c.JSON(http.StatusOK, response.SuccessResponse(nil))
}
