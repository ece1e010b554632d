package app

import (
	"fmt"
	"log"
	"strings"

	"hireflow/internal/config"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/delivery/http/routes"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	registry := routes.NewRegistry(cfg, container.DB, container.Cache, container.Objects, hub, logger)
	registry.Register(f)

	cleanup := func() error {
		ws.SetDefaultHub(nil)
		return container.Close()
	}

	return &App{Fiber: f, Hub: hub}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
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
