package delivery

import (
	"campaigngo/internal/delivery/middleware"
	"campaigngo/pkg/config"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	config   config.ServerConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

func NewHTTPRouter(
	handlers *HTTPHandlers,
	cfg config.ServerConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		config:   cfg,
		logger:   logger,
		metrics:  metrics,
		gatherer: gatherer,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.config.RequestTimeout))
	router.Use(middleware.BodyLimit(r.config.MaxBodyBytes))

	corsConfig := cors.DefaultConfig()
	if len(r.config.AllowedOrigins) == 0 || (len(r.config.AllowedOrigins) == 1 && r.config.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = r.config.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(corsConfig))

	router.GET("/health", r.handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", r.handlers.CreateCampaign)
			campaigns.GET("", r.handlers.ListCampaigns)
			campaigns.GET("/summary", r.handlers.GetCampaignSummary)
			campaigns.GET("/:id", r.handlers.GetCampaign)
			campaigns.POST("/parse", r.handlers.ParseCampaign)
			campaigns.POST("/parse/batch", r.handlers.ParseCampaignBatch)
			campaigns.POST("/preview", r.handlers.PreviewCampaign)
		}

		answers := v1.Group("/answers")
		{
			answers.POST("/enhance", r.handlers.EnhanceAnswer)
		}
	}

	router.GET("/metrics", middleware.PrometheusHandler(r.gatherer))

	return router
}
