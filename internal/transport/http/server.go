package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "github.com/Xenowa/foodifire-backend/internal/app"
	"github.com/Xenowa/foodifire-backend/internal/bootstrap"
	"github.com/Xenowa/foodifire-backend/internal/cache"
	"github.com/Xenowa/foodifire-backend/internal/platform/rabbitmq"
	"github.com/Xenowa/foodifire-backend/internal/repository"
	"github.com/Xenowa/foodifire-backend/internal/sso"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/handler"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/middleware"
)

const homeBanner = "<h1>Welcome to foodifire 🔥</h1>"

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsMiddleware(app.Config.CORSOrigins()))

	userRepo := repository.NewUserRepository(app.MySQL)
	conditionRepo := repository.NewConditionRepository(app.MySQL)
	imageCache := cache.NewImageCache(app.Redis, time.Duration(app.Config.Redis.ImageTTLHours)*time.Hour)
	reportPublisher := rabbitmq.NewReportPublisher(app.MQConn, app.Config.RabbitMQ.ReportLogQueue)

	reportService := appsvc.NewReportService(app.Classifier, conditionRepo, imageCache, reportPublisher)
	authService := appsvc.NewAuthService(
		userRepo,
		sso.NewGoogleVerifier(app.Config.Auth.GoogleClientID),
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)
	accountService := appsvc.NewAccountService(userRepo)

	reportHandler := handler.NewReportHandler(reportService, imageCache)
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homeBanner))
	})
	router.GET("/healthz", healthHandler.Check)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/")
	protected.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	protected.POST("/getReport", reportHandler.GetReport)
	protected.GET("/userImage", reportHandler.UserImage)
	protected.DELETE("/user", accountHandler.DeleteUser)
	protected.POST("/disease", accountHandler.AddDisease)
	protected.DELETE("/disease", accountHandler.RemoveDisease)
	protected.POST("/report", accountHandler.AddReport)
	protected.DELETE("/report", accountHandler.RemoveReport)

	return router
}

// corsMiddleware builds the allow-list from config; an empty list opens the
// API to all origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
