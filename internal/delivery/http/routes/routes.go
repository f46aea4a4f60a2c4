package routes

import (
	"log"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/delivery/http/handler"
	v1 "jobpath/internal/delivery/http/routes/v1"
	"jobpath/internal/infrastructure/ai"
	"jobpath/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg        config.Config
	logger     *log.Logger
	db         database.DB
	cache      *cache.Redis
	summarizer *ai.Summarizer

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, logger *log.Logger, db database.DB, redisCache *cache.Redis, summarizer *ai.Summarizer) *Registry {
	return &Registry{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		cache:      redisCache,
		summarizer: summarizer,
		health:     handler.NewHealthHandler(cfg.App, db),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	apiV1 := api.Group("/v1")
	r.health.RegisterRoutes(apiV1)
	v1.Register(apiV1, r.cfg, r.logger, r.db, r.cache, r.summarizer)
}
