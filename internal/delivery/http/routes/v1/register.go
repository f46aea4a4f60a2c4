package v1

import (
	"log"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/delivery/http/handler"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/infrastructure/ai"
	"jobpath/internal/infrastructure/cache"
	"jobpath/internal/infrastructure/persistence/postgres"
	"jobpath/internal/pkg/jwt"
	"jobpath/internal/usecase"
	jobuc "jobpath/internal/usecase/job"
	useruc "jobpath/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

// Register wires the v1 API: repositories over the shared pool, usecases on
// top, handlers on top of those. Everything under /jobs and /ai sits behind
// the auth gate; /ai additionally sits behind the per-user rate limiter.
func Register(r fiber.Router, cfg config.Config, logger *log.Logger, db database.DB, redisCache *cache.Redis, summarizer *ai.Summarizer) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)

	authMw := middleware.NewAuthMiddleware(jwtSvc, userRepo)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := useruc.NewService(userRepo, jobRepo)
	jobUC := jobuc.NewService(jobRepo, redisCache, logger)

	authHandler := handler.NewAuthHandler(authUC, userUC, cfg)
	jobsHandler := handler.NewJobsHandler(jobUC)
	aiHandler := handler.NewAIHandler(summarizer)

	authGroup := r.Group("/auth")
	authProtected := authGroup.Group("", authMw.Middleware())
	authHandler.RegisterRoutes(authGroup, authProtected)

	protected := r.Group("", authMw.Middleware())

	jobsHandler.RegisterRoutes(protected.Group("/jobs"))

	aiLimiter := middleware.NewRateLimitMiddleware(redisCache, "ai:summarize", cfg.AI.RateLimit, cfg.AI.RateWindow)
	aiHandler.RegisterRoutes(protected.Group("/ai", aiLimiter.Middleware()))
}
