package routes

import (
	"log"

	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/delivery/http/handler"
	v1 "hireflow/internal/delivery/http/routes/v1"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/infrastructure/storage"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg     config.Config
	db      database.DB
	cache   *cache.Redis
	objects storage.ObjectStore

	health    *handler.HealthHandler
	wsHandler *ws.Handler
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, objects storage.ObjectStore, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{
		cfg:       cfg,
		db:        db,
		cache:     redis,
		objects:   objects,
		health:    handler.NewHealthHandler(db),
		wsHandler: ws.NewHandler(hub, logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/ws", r.wsHandler.HandleCandidatesWS)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.objects)
}
