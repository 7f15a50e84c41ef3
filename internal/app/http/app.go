package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmiddleware "golden_hour/internal/middleware"
	httprouters "golden_hour/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	host    string
	port    string
}

func New(log *slog.Logger, sessionSecret []byte, host, port string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore(sessionSecret)))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		host:    host,
		port:    port,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.e.Group("/api/v1")
	{
		sessionGroup := api.Group("/session")
		{
			sessionGroup.POST("", s.routers.CreateSession)
			sessionGroup.POST("/refresh", s.routers.RefreshSession)
			sessionGroup.DELETE("", s.routers.Logout)
		}

		// Public read surface plus the one public write.
		api.GET("/photos", s.routers.ListPhotos)
		api.GET("/videos", s.routers.ListVideos)
		api.GET("/packages", s.routers.ListPackages)
		api.GET("/special-moments", s.routers.ListGalleries)
		api.GET("/special-moments/:id", s.routers.GetGallery)
		api.GET("/content/homepage", s.routers.GetHomepageContent)
		api.GET("/content/sitewide", s.routers.GetSitewideContent)
		api.GET("/categories/meta", s.routers.ListCategoryMeta)
		api.GET("/categories/:category/meta", s.routers.GetCategoryMeta)
		api.POST("/bookings", s.routers.CreateBooking)

		profileGroup := api.Group("/profile")
		{
			profileGroup.GET("", s.routers.GetProfile)
			profileGroup.PUT("", s.routers.SaveProfile)
		}

		adminGroup := api.Group("/admin", s.routers.AdminGuard)
		{
			adminGroup.POST("/photos", s.routers.UploadPhoto)
			adminGroup.DELETE("/photos/:id", s.routers.DeletePhoto)
			adminGroup.PUT("/photos/:id/featured", s.routers.SetPhotoFeatured)

			adminGroup.POST("/videos", s.routers.UploadVideo)
			adminGroup.DELETE("/videos/:id", s.routers.DeleteVideo)
			adminGroup.PUT("/videos/:id/featured", s.routers.SetVideoFeatured)

			adminGroup.POST("/packages", s.routers.CreatePackage)
			adminGroup.PUT("/packages/:id", s.routers.UpdatePackage)
			adminGroup.DELETE("/packages/:id", s.routers.DeletePackage)

			adminGroup.GET("/bookings", s.routers.ListBookings)
			adminGroup.POST("/bookings/:id/approve", s.routers.ApproveBooking)
			adminGroup.POST("/bookings/:id/reject", s.routers.RejectBooking)
			adminGroup.PUT("/bookings/:id/status", s.routers.UpdateBookingStatus)
			adminGroup.PUT("/bookings/:id/photographer", s.routers.AssignPhotographer)

			adminGroup.POST("/special-moments", s.routers.CreateGallery)
			adminGroup.PUT("/special-moments/:id", s.routers.UpdateGallery)

			adminGroup.PUT("/categories/:category/meta", s.routers.UpdateCategoryMeta)
			adminGroup.PUT("/content/homepage", s.routers.UpdateHomepageContent)
			adminGroup.PUT("/content/sitewide", s.routers.UpdateSitewideContent)

			adminGroup.POST("/roles", s.routers.AssignRole)

			adminGroup.GET("/cache", s.routers.ListCacheKeys)
			adminGroup.DELETE("/cache", s.routers.FlushCache)
		}
	}
}
