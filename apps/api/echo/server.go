package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
	"github.com/tuitionlk/portal/core/stats"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		AccountSvc  *account.Service
		LecturerSvc *lecturer.Service
		MaterialSvc *material.Service
		RequestSvc  *request.Service
		ContentSvc  *content.Service
		StatsSvc    *stats.Service
		Validate    *validator.Validate
		Translator  ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.Conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.deps.Conf.Debug || s.deps.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = s.deps.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home(s.deps.Conf))

	v1 := s.app.Group("/v1")

	registerAuthAPI(v1, s.deps.AccountSvc, s.deps.Validate)
	registerPublicAPI(v1, s.deps.ContentSvc, s.deps.StatsSvc)
	registerStudentAPI(v1.Group("/student"), s.deps.MaterialSvc, s.deps.RequestSvc, s.deps.Validate)

	ag := v1.Group("/admin")
	registerAccountAPI(ag, s.deps.AccountSvc, s.deps.Validate)
	registerLecturerAPI(ag, s.deps.LecturerSvc, s.deps.Validate)
	registerMaterialAPI(ag, s.deps.MaterialSvc, s.deps.Validate)
	registerRequestAPI(ag, s.deps.RequestSvc, s.deps.Validate)
	registerContentAPI(ag, s.deps.ContentSvc, s.deps.Validate)
}

// Start runs the listener; the outcome is reported on Errors().
func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown sends a SIGTERM to initiate a graceful shutdown
// when a fatal error is caught by the HTTPErrorHandler.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+conf.AppName+" API!")
	}
}
