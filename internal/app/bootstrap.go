package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/delivery/http/handler"
	"exercise-tracker/internal/delivery/http/middleware"
	"exercise-tracker/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an initialized container.
func New(cfg config.Config, c *Container) *App {
	logger := zap.NewNop()
	if c != nil && c.Logger != nil {
		logger = c.Logger
	}

	// Immutable: request strings outlive the handler in the memory store and the feed.
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName, Immutable: true})

	registerGlobalMiddleware(f, logger)
	registerRoutes(f, c)
	registerStatic(f, cfg.App)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency and returns the app with its cleanup.
func Bootstrap(cfg config.Config, logger *zap.Logger, opts ...ContainerOption) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return New(cfg, c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.Metrics())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(cors.New())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c),
		handler.NewUserHandler(c.UserUsecase),
		handler.NewExerciseHandler(c.ExerciseUsecase),
	)
	registry.Register(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func registerStatic(app *fiber.App, cfg config.AppConfig) {
	if app == nil {
		return
	}

	if cfg.ViewsDir != "" {
		index := filepath.Join(cfg.ViewsDir, "index.html")
		app.Get("/", func(c fiber.Ctx) error {
			return c.SendFile(index)
		})
	}
	if cfg.PublicDir != "" {
		app.Use("/", static.New(cfg.PublicDir))
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
