package v1

import (
	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/infrastructure/storage"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, objects storage.ObjectStore) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	requirementRepo := repository.NewPostgresRequirementRepository(db)

	var recCache usecase.RecommendationCache
	if redis != nil {
		recCache = redis
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, requirementRepo, objects, recCache)
	requirementUC := usecase.NewRequirementUsecase(requirementRepo, recCache)
	recommendationUC := usecase.NewRecommendationUsecase(candidateRepo, requirementRepo, recCache)

	authHandler := handler.NewAuthHandler(authUC)
	candidateHandler := handler.NewCandidateHandler(candidateUC)
	requirementHandler := handler.NewRequirementHandler(requirementUC)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	candidatesGroup := protected.Group("/candidates")
	// /recommendations must be registered before the /:id routes.
	recommendationHandler.RegisterRoutes(candidatesGroup)
	candidateHandler.RegisterRoutes(candidatesGroup)

	requirementsGroup := protected.Group("/requirements")
	requirementHandler.RegisterRoutes(requirementsGroup)
}
