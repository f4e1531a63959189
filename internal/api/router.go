package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/usertask-service/docs"
	"github.com/99minutos/usertask-service/internal/api/handler"
	"github.com/99minutos/usertask-service/internal/api/middleware"
	"github.com/99minutos/usertask-service/internal/core/domain"
	"github.com/99minutos/usertask-service/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Users   ports.UserService
	Reports ports.ReportService
	Tasks   ports.TaskService

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.CheckFunc

	// JWTSecret enables bearer auth on /v1 when non-empty.
	JWTSecret string

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "usertask",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// --- v1 ---
	v1 := e.Group("/v1")
	var write []echo.MiddlewareFunc
	if deps.JWTSecret != "" {
		v1.Use(middleware.Auth(deps.JWTSecret))
		write = append(write, middleware.RBAC(domain.RoleAdmin, domain.RoleEditor))
	}

	users := handler.NewUserHandler(deps.Users)
	v1.GET("/users", users.List)
	v1.POST("/users", users.Create, write...)
	v1.GET("/users/by-username/:username", users.GetByUsername)
	v1.GET("/users/by-username/:username/tasks", users.TasksByUsername)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id", users.Update, write...)
	v1.DELETE("/users/:id", users.Delete, write...)
	v1.GET("/users/:id/tasks", users.Tasks)

	tasks := handler.NewTaskHandler(deps.Tasks)
	v1.GET("/tasks", tasks.List)
	v1.POST("/tasks", tasks.Create, write...)
	v1.GET("/tasks/:id", tasks.Get)
	v1.PUT("/tasks/:id", tasks.Update, write...)
	v1.DELETE("/tasks/:id", tasks.Delete, write...)

	reports := handler.NewReportHandler(deps.Reports)
	v1.GET("/reports/user-report", reports.UserReport)
	v1.GET("/reports/user-tasks", reports.UserTasks)
	v1.GET("/reports/user-tasks.csv", reports.UserTasksCSV)

	return e
}
