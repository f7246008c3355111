package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hostalcentro/sistema-clientes/internal/api/handler"
	"github.com/hostalcentro/sistema-clientes/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Dependencies are constructed in main and passed in explicitly; nothing here
// reaches for globals.
func NewRouter(
	clienteService ports.ClienteService,
	dispatcher handler.InfraccionDispatcher,
	db *sql.DB,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("registro"))

	// --- Handlers ---
	clienteHandler := handler.NewClienteHandler(clienteService)
	infraccionHandler := handler.NewInfraccionHandler(dispatcher)

	// --- API routes (legacy route shapes preserved) ---
	api := e.Group("/api")
	api.POST("/registrar", clienteHandler.Registrar)
	api.POST("/quitar-vida", clienteHandler.QuitarVida)
	api.GET("/cliente/:celular", clienteHandler.Obtener)
	api.GET("/listar", clienteHandler.Listar)
	api.PUT("/reiniciar/:id", clienteHandler.Reiniciar)
	api.POST("/infracciones", infraccionHandler.Receive)
	api.POST("/infracciones/batch", infraccionHandler.ReceiveBatch)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
