package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/admin"
	"github.com/recipehub/backend/internal/api"
	"github.com/recipehub/backend/internal/middleware"
	"github.com/recipehub/backend/internal/service"
)

// SetupRouter wires services, handlers and middleware into a gin
// engine. cache may be nil (token lookups skip redis); storage backs
// recipe image uploads.
func SetupRouter(cfg *config.Config, db *gorm.DB, cache *redis.Client, storage service.Storage) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	// Initialize services
	authService := service.NewAuthService(db, cache)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db, cfg.RecipeOrdering)
	tagService := service.NewTagService(db)
	ingredientService := service.NewIngredientService(db)
	imageService := service.NewImageService(storage, recipeService)

	limiter := middleware.NewRateLimiter(rate.Limit(rateLimit(cfg)), cfg.RateLimitBurst)

	// Initialize handlers
	authHandler := api.NewAuthHandler(authService, limiter.Middleware())
	profileHandler := api.NewProfileHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService)
	tagHandler := api.NewTagHandler(tagService)
	ingredientHandler := api.NewIngredientHandler(ingredientService)
	imageHandler := api.NewImageHandler(imageService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		profileHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)
		tagHandler.RegisterRoutes(protected)
		ingredientHandler.RegisterRoutes(protected)
		imageHandler.RegisterRoutes(protected)
	}

	// Admin site
	router.SetHTMLTemplate(admin.Templates())
	sessions := admin.NewSessionManager(cfg.SessionSecret)
	adminHandler := admin.NewHandler(userService, authService, sessions)
	adminHandler.RegisterRoutes(router)

	// Locally stored images are served by the app itself
	if cfg.StorageDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	return router
}

func rateLimit(cfg *config.Config) float64 {
	if cfg.RateLimitRPS <= 0 {
		return 5
	}
	return cfg.RateLimitRPS
}
