package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/analytics"
	"github.com/trezcool/masomo-dashboard/core/audit"
	"github.com/trezcool/masomo-dashboard/core/event"
	"github.com/trezcool/masomo-dashboard/core/school"
	"github.com/trezcool/masomo-dashboard/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        *user.Service
		EventSvc       *event.Service
		SchoolRepo     school.Repository
		AnalyticsRepo  analytics.Repository
		Audit          *audit.Recorder
		DisableReqLogs bool
	}

	// Server is the stub dashboard backend: the REST API plus the /dashboard shell page.
	Server struct {
		ServerDeps
		app      *echo.Echo
		jwt      echo.MiddlewareFunc
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	deps.Logger = core.OrNop(deps.Logger)
	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	debug := s.Conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if debug {
		s.app.Logger.SetLevel(log.DEBUG)
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.SignalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)
	s.app.GET("/dashboard", dashboardPage)

	s.jwt = middleware.JWTWithConfig(newJWTConfig(s.Conf))
	scoped := []echo.MiddlewareFunc{s.jwt, schoolScopeMiddleware()}

	s.registerAuthAPI(s.app.Group("/auth"))
	s.registerSchoolAPI(s.app.Group("/api", scoped...))
	s.registerEventAPI(s.app.Group("/events", scoped...))
	s.registerAnalyticsAPI(s.app.Group("/analytics", append(scoped, adminMiddleware())...))
	s.registerAuditAPI(s.app.Group("/audit_logs", append(scoped, adminMiddleware())...))
}

// Start listens on the configured address. Listener errors are reported on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.Logger.Info("API listening on " + s.Conf.Server.Address)
	if err := s.app.Start(s.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Masomo API!")
}
