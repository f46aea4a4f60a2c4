package app

import (
	"context"
	"log"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/database"
	dbpostgres "jobpath/internal/database/postgres"
	"jobpath/internal/infrastructure/ai"
	"jobpath/internal/infrastructure/cache"
)

// Container holds the process-wide infrastructure: one pool, one cache, one
// AI client. Everything downstream borrows from here.
type Container struct {
	Config     config.Config
	Logger     *log.Logger
	DB         database.DB
	Cache      *cache.Redis
	Summarizer *ai.Summarizer
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := dbpostgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	summarizer, err := ai.NewSummarizer(context.Background(), cfg.AI)
	if err != nil {
		_ = redisCache.Close()
		_ = db.Close()
		return nil, err
	}
	if !summarizer.Configured() {
		logger.Printf("[AI] GEMINI_API_KEY not set, summarization disabled")
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Cache:      redisCache,
		Summarizer: summarizer,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Summarizer != nil {
		if err := c.Summarizer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
