package api

import (
	"context"
	"fmt"
	"log"

	authmod "github.com/example/produto-api/modules/auth"
	productmod "github.com/example/produto-api/modules/product"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// accessLevel declares what a route requires before its handler runs.
type accessLevel int

const (
	accessPublic accessLevel = iota // no credentials
	accessUser                      // valid bearer token
	accessAdmin                     // valid bearer token + ADMIN role
)

// route binds a method and path to a handler with a declared access level.
// There is exactly one handler set; guarded and unguarded variants of the
// same route cannot coexist.
type route struct {
	method  string
	path    string
	access  accessLevel
	handler fiber.Handler
}

// Module provides the HTTP API as a mono module.
type Module struct {
	app           *fiber.App
	authModule    *authmod.Module
	productModule *productmod.Module
	port          int
	staticDir     string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module. staticDir may be empty to disable
// static file serving.
func NewModule(port int, staticDir string) *Module {
	return &Module{
		port:      port,
		staticDir: staticDir,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetAuthModule wires the auth module. Must be called before Start.
func (m *Module) SetAuthModule(a *authmod.Module) {
	m.authModule = a
}

// SetProductModule wires the product module. Must be called before Start.
func (m *Module) SetProductModule(p *productmod.Module) {
	m.productModule = p
}

// Start builds the Fiber app and begins serving.
func (m *Module) Start(_ context.Context) error {
	app, err := m.newApp()
	if err != nil {
		return err
	}
	m.app = app

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// newApp assembles the Fiber app with middleware and the route table.
func (m *Module) newApp() (*fiber.App, error) {
	if m.authModule == nil || m.authModule.Service() == nil {
		return nil, fmt.Errorf("auth module not wired")
	}
	if m.productModule == nil || m.productModule.Service() == nil {
		return nil, fmt.Errorf("product module not wired")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Produto API",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	if m.staticDir != "" {
		app.Static("/app", m.staticDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	authPort := m.authModule.Service()
	handlers := NewHandlers(m.productModule.Service(), authPort)

	routes := []route{
		{fiber.MethodGet, "/produtos", accessUser, handlers.ListProducts},
		{fiber.MethodGet, "/produtos/:id", accessUser, handlers.GetProduct},
		{fiber.MethodPost, "/produtos", accessAdmin, handlers.CreateProduct},
		{fiber.MethodPut, "/produtos/:id", accessAdmin, handlers.UpdateProduct},
		{fiber.MethodDelete, "/produtos/:id", accessAdmin, handlers.DeleteProduct},
		{fiber.MethodPost, "/seguranca/login", accessPublic, handlers.Login},
	}

	group := app.Group("/api")
	for _, r := range routes {
		group.Add(r.method, r.path, chain(authPort, r.access, r.handler)...)
	}

	return app, nil
}

// chain prepends the middleware a route's access level demands.
func chain(authPort authmod.Port, access accessLevel, handler fiber.Handler) []fiber.Handler {
	switch access {
	case accessUser:
		return []fiber.Handler{AuthRequired(authPort), handler}
	case accessAdmin:
		return []fiber.Handler{AuthRequired(authPort), AdminRequired(authPort), handler}
	default:
		return []fiber.Handler{handler}
	}
}

// Stop shuts down the HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// errorHandler handles errors that escape route handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(MessageResponse{Message: message})
}
