package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sudooom.mj.advisor/docs"
	"sudooom.mj.advisor/internal/config"
	"sudooom.mj.advisor/internal/handler"
	"sudooom.mj.advisor/internal/jwt"
	"sudooom.mj.advisor/internal/middleware"
)

// SetupRouter 设置路由
// jwtService 为 nil 时记录接口不做认证，分析接口也不再识别调用方
func SetupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	jwtService *jwt.Service,
	advisorHandler *handler.AdvisorHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(cfg.App.Mode)

	r := gin.New()

	// 全局中间件
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowCredentials,
	))

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 探活
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// API v1
	v1 := r.Group("/api/v1")
	if jwtService != nil {
		v1.Use(middleware.OptionalJWT(jwtService))
	}
	{
		v1.POST("/recommend", advisorHandler.Recommend)
		v1.GET("/recommend/health", healthHandler.Recommend)

		v1.POST("/analyze", advisorHandler.Analyze)
		v1.POST("/shanten", advisorHandler.Shanten)

		v1.POST("/agarihai", advisorHandler.Agarihai)
		v1.GET("/agarihai/health", healthHandler.Agarihai)

		score := v1.Group("/score")
		{
			score.POST("/calculate", advisorHandler.Score)
			score.GET("/health", healthHandler.Score)
		}

		// 分析记录
		records := v1.Group("/records")
		if jwtService != nil {
			records.Use(middleware.JWTAuth(jwtService))
		}
		{
			records.GET("", advisorHandler.ListRecords)
			records.GET("/:id", advisorHandler.GetRecord)
		}
	}

	return r
}
