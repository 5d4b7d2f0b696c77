package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/openledgerhq/gl_backend/cmd/docs"
	"github.com/openledgerhq/gl_backend/internal/core/domain"
	"github.com/openledgerhq/gl_backend/internal/core/services"
	"github.com/openledgerhq/gl_backend/internal/middleware"
	"github.com/openledgerhq/gl_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, container *services.Container) {
	registerCustomValidators()

	r.Use(cors.Default())

	rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimitRPM)}
	limiterInstance := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(limiterInstance))

	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, container)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators installs the accountcode binding tag used by
// dto.CreateAccountRequest.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			return domain.IsValidAccountCode(fl.Field().String())
		})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, container *services.Container) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, container.Account)
	registerPeriodRoutes(v1, container.Period)
	registerJournalRoutes(v1, container.Journal)
	registerReportingRoutes(v1, container.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
