package router

import (
	"time"

	"clinicore/internal/config"
	"clinicore/internal/handler"
	"clinicore/internal/middleware"
	"clinicore/internal/service"
	"clinicore/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New assembles the HTTP surface: middleware chain, public endpoints, and
// the authenticated API. Everything behind JWTAuth is store-routed by role.
func New(
	cfg *config.Config,
	stores *store.Router,
	authSvc service.AuthService,
	prodDB, demoDB *gorm.DB,
	rdb *redis.Client,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.Metrics(),
		middleware.RateLimiter(300, time.Minute),
	)

	authHandler := handler.NewAuthHandler(authSvc)
	patientHandler := handler.NewPatientHandler(stores)
	stockHandler := handler.NewStockHandler(stores)
	purchaseHandler := handler.NewPurchaseHandler(stores)
	billHandler := handler.NewBillHandler(stores)
	adminHandler := handler.NewAdminHandler(stores)
	healthHandler := handler.NewHealthHandler(prodDB, demoDB, rdb)

	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", middleware.LoginRateLimiter(), authHandler.Login)

	api := r.Group("/", middleware.JWTAuth(cfg.JWTSecret))
	{
		api.GET("/auth/verify", authHandler.Verify)
		api.GET("/auth/me", authHandler.Verify)
		api.POST("/auth/register", middleware.RequireAdmin(), authHandler.Register)

		api.GET("/patients", patientHandler.List)
		api.POST("/patients", patientHandler.Create)
		api.GET("/patients/:id", patientHandler.Get)
		api.PUT("/patients/:id", middleware.RequireAdmin(), patientHandler.Update)
		api.DELETE("/patients/:id", middleware.RequireAdmin(), patientHandler.Delete)

		api.GET("/stocks", stockHandler.List)
		api.POST("/stocks", stockHandler.Create)
		api.GET("/stocks/:id", stockHandler.Get)
		api.PUT("/stocks/:id", stockHandler.Update)
		api.DELETE("/stocks/:id", stockHandler.Delete)

		api.POST("/purchases", purchaseHandler.Record)
		api.GET("/purchases", purchaseHandler.List)
		api.DELETE("/purchases/:id", purchaseHandler.Delete)

		api.POST("/generate-bill", billHandler.Generate)
		api.GET("/bills-history", billHandler.List)
		api.GET("/bills/download/:billId", billHandler.Download)
		api.GET("/bills/:billId", billHandler.Get)
		api.PUT("/bills/:billId", billHandler.Update)
		api.DELETE("/bills/:billId", billHandler.Delete)
		api.DELETE("/bills", billHandler.DeleteAll)

		api.POST("/admin/reload-template", middleware.RequireAdmin(), adminHandler.ReloadTemplate)
	}

	return r
}
