package server

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/wellcrafted/reawaken/internal/model"
	"github.com/wellcrafted/reawaken/internal/service"
)

const version = "2.0.0"

// Config holds server settings.
type Config struct {
	Addr string
	// Defaults applied to uploads that do not override analysis parameters.
	Analysis model.AnalysisConfig
	// Loader reads uploaded files. Defaults to the CSV loader.
	Loader service.RowLoader
}

// Server is the HTTP front end over the analysis engine.
type Server struct {
	echo   *echo.Echo
	store  *RunStore
	loader service.RowLoader
	cfg    Config
}

type echoValidator struct {
	v *validator.Validate
}

func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// New creates a server with its routes registered.
func New(cfg Config, loader service.RowLoader) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Validator = &echoValidator{v: validator.New(validator.WithRequiredStructEnabled())}

	s := &Server{
		echo:   e,
		store:  NewRunStore(),
		loader: loader,
		cfg:    cfg,
	}

	e.GET("/", s.root)
	e.GET("/health", s.health)
	e.POST("/upload-files", s.uploadFiles)
	e.GET("/processing-status/:job_id", s.processingStatus)
	e.GET("/results/:job_id", s.results)
	e.GET("/analytics/customer-insights/:job_id", s.customerInsights)
	e.GET("/analytics/rep-performance/:job_id", s.repPerformance)

	return s
}

// Start begins serving on the configured address and blocks.
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.Addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Store exposes the run store, mainly for tests.
func (s *Server) Store() *RunStore {
	return s.store
}
