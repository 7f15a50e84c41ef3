package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golden_hour/internal/cache"
	"golden_hour/internal/lib/jwt"
	"golden_hour/internal/remote"
	querysvc "golden_hour/internal/services/query_service"
	transporthttp "golden_hour/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// fakeSessions is an in-memory stand-in for the redis session repository.
type fakeSessions struct {
	mu         sync.Mutex
	refresh    map[string]bool
	redirected map[string]bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		refresh:    make(map[string]bool),
		redirected: make(map[string]bool),
	}
}

func (f *fakeSessions) SaveRefreshToken(_ context.Context, id, token string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh[id+":"+token] = true
	return nil
}

func (f *fakeSessions) GetRefreshToken(_ context.Context, id, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh[id+":"+token], nil
}

func (f *fakeSessions) DeleteRefreshToken(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refresh, id+":"+token)
	return nil
}

func (f *fakeSessions) DeleteAllSessions(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.refresh {
		if strings.HasPrefix(key, id+":") {
			delete(f.refresh, key)
		}
	}
	return nil
}

func (f *fakeSessions) MarkRedirected(_ context.Context, sessionID string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.redirected[sessionID] {
		return false, nil
	}
	f.redirected[sessionID] = true
	return true, nil
}

// stubBackend counts hits per path and serves canned studio data. The role
// endpoint answers per bearer identity so guard scenarios can mix callers.
type stubBackend struct {
	photoHits   atomic.Int64
	bookingHits atomic.Int64
	adminTokens map[string]bool
}

func (s *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /photos", func(w http.ResponseWriter, _ *http.Request) {
		s.photoHits.Add(1)
		io.WriteString(w, `[{"id":"p1","title":"First Dance","category":"weddings","isFeatured":true}]`)
	})

	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, _ *http.Request) {
		s.bookingHits.Add(1)
		io.WriteString(w, `{"id":"b1"}`)
	})

	mux.HandleFunc("GET /bookings", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `[{"id":"b1","customerName":"Ann","customerEmail":"ann@example.com","packageId":"pkg1","eventDate":"2026-06-01","status":"pending"}]`)
	})

	mux.HandleFunc("GET /role", func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if s.adminTokens[token] {
			io.WriteString(w, `{"role":"admin"}`)
			return
		}
		io.WriteString(w, `{"role":"user"}`)
	})

	return mux
}

func newTestServer(t *testing.T, backendURL string) *echo.Echo {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	backend := remote.NewClient(backendURL, time.Second, log)
	store := cache.NewStore(log)
	queries := querysvc.NewQueryService(log, store, backend)

	routers := transporthttp.NewRouter(
		log, store, queries, backend, newFakeSessions(),
		testSecret, time.Hour, time.Hour, time.Hour,
	)

	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	e.Use(session.Middleware(sessions.NewCookieStore(testSecret)))

	e.GET("/photos", routers.ListPhotos)
	e.POST("/bookings", routers.CreateBooking)
	e.GET("/admin/bookings", routers.ListBookings, routers.AdminGuard)
	e.GET("/admin/cache", routers.ListCacheKeys, routers.AdminGuard)
	e.DELETE("/admin/cache", routers.FlushCache, routers.AdminGuard)

	return e
}

func TestListPhotos_ServesFromCacheAfterFirstFetch(t *testing.T) {
	stub := &stubBackend{}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/photos", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "First Dance")
	}

	assert.Equal(t, int64(1), stub.photoHits.Load())
}

func TestCreateBooking_PublicWrite(t *testing.T) {
	stub := &stubBackend{}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	body := `{"customerName":"Ann","customerEmail":"ann@example.com","packageId":"pkg1","eventDate":"2026-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.Data["id"])
}

func TestCreateBooking_InvalidPayloadNeverReachesBackend(t *testing.T) {
	stub := &stubBackend{}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	body := `{"customerName":"Ann","customerEmail":"not-an-email","packageId":"pkg1","eventDate":"2026-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), stub.bookingHits.Load())
}

func TestAdminGuard_RedirectsUnauthenticatedOnce(t *testing.T) {
	stub := &stubBackend{}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	first := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	firstRec := httptest.NewRecorder()
	e.ServeHTTP(firstRec, first)

	require.Equal(t, http.StatusFound, firstRec.Code)
	assert.Equal(t, "/", firstRec.Header().Get(echo.HeaderLocation))

	// Same browser session: the redirect must not fire again.
	second := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	for _, cookie := range firstRec.Result().Cookies() {
		second.AddCookie(cookie)
	}
	secondRec := httptest.NewRecorder()
	e.ServeHTTP(secondRec, second)

	assert.Equal(t, http.StatusUnauthorized, secondRec.Code)
}

func TestAdminGuard_DeniesNonAdmin(t *testing.T) {
	token, err := jwt.NewToken("bob", testSecret, time.Hour)
	require.NoError(t, err)

	stub := &stubBackend{adminTokens: map[string]bool{}}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFlushCache_ForcesRefetch(t *testing.T) {
	token, err := jwt.NewToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	stub := &stubBackend{adminTokens: map[string]bool{token: true}}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	warm := httptest.NewRequest(http.MethodGet, "/photos", nil)
	warmRec := httptest.NewRecorder()
	e.ServeHTTP(warmRec, warm)
	require.Equal(t, http.StatusOK, warmRec.Code)
	require.Equal(t, int64(1), stub.photoHits.Load())

	keysReq := httptest.NewRequest(http.MethodGet, "/admin/cache", nil)
	keysReq.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	keysRec := httptest.NewRecorder()
	e.ServeHTTP(keysRec, keysReq)
	require.Equal(t, http.StatusOK, keysRec.Code)
	assert.Contains(t, keysRec.Body.String(), "photos")

	flush := httptest.NewRequest(http.MethodDelete, "/admin/cache", nil)
	flush.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	flushRec := httptest.NewRecorder()
	e.ServeHTTP(flushRec, flush)
	require.Equal(t, http.StatusOK, flushRec.Code)

	again := httptest.NewRequest(http.MethodGet, "/photos", nil)
	againRec := httptest.NewRecorder()
	e.ServeHTTP(againRec, again)
	require.Equal(t, http.StatusOK, againRec.Code)

	assert.Equal(t, int64(2), stub.photoHits.Load())
}

func TestAdminGuard_AllowsAdmin(t *testing.T) {
	token, err := jwt.NewToken("alice", testSecret, time.Hour)
	require.NoError(t, err)

	stub := &stubBackend{adminTokens: map[string]bool{token: true}}
	backend := httptest.NewServer(stub.handler())
	defer backend.Close()

	e := newTestServer(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending")
}
