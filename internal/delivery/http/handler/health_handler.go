package handler

import (
	"context"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	cfg config.AppConfig
	db  database.DB
}

func NewHealthHandler(cfg config.AppConfig, db database.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	overall := "ok"
	if dbStatus != "up" {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}

	return response.Success(c, status, "", fiber.Map{
		"status":      overall,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Environment,
		"version":     h.cfg.Version,
		"database":    dbStatus,
	})
}
