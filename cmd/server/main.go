// Package main runs the booking site HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alaqsa-transport/backend/config"
	"github.com/alaqsa-transport/backend/internal/auth"
	"github.com/alaqsa-transport/backend/internal/blog"
	"github.com/alaqsa-transport/backend/internal/bookings"
	"github.com/alaqsa-transport/backend/internal/contact"
	"github.com/alaqsa-transport/backend/internal/emaillogs"
	"github.com/alaqsa-transport/backend/internal/middleware"
	"github.com/alaqsa-transport/backend/internal/reviews"
	"github.com/alaqsa-transport/backend/internal/routes"
	"github.com/alaqsa-transport/backend/internal/settings"
	"github.com/alaqsa-transport/backend/internal/vehicles"
	"github.com/alaqsa-transport/backend/pkg/database"
	"github.com/alaqsa-transport/backend/pkg/queue"
	"github.com/alaqsa-transport/backend/pkg/redis"
	"github.com/alaqsa-transport/backend/pkg/response"
	"github.com/alaqsa-transport/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			MediaBucket:          cfg.AWS.MediaBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth (staff accounts)
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Site settings and the discount snapshot used by all pricing
	settingsRepo := settings.NewRepository(pool)
	discountProvider := settings.NewDiscountProvider(settingsRepo, rdb.Client, logger)
	settingsHandler := settings.NewHandler(settingsRepo, discountProvider, logger)

	// Fleet
	vehicleRepo := vehicles.NewRepository(pool)
	vehicleHandler := vehicles.NewHandler(vehicleRepo, s3Client, logger)

	// Routes and quotes
	routeRepo := routes.NewRepository(pool)
	routeHandler := routes.NewHandler(routeRepo, vehicleRepo, discountProvider, logger)

	// Bookings
	bookingRepo := bookings.NewRepository(pool)
	bookingHandler := bookings.NewHandler(bookingRepo, routeRepo, vehicleRepo, discountProvider, jobQueue, logger)

	// Reviews
	reviewRepo := reviews.NewRepository(pool)
	reviewHandler := reviews.NewHandler(reviewRepo, logger)

	// Blog
	postRepo := blog.NewRepository(pool)
	postHandler := blog.NewHandler(postRepo, s3Client, logger)

	// Contact form
	contactRepo := contact.NewRepository(pool)
	contactHandler := contact.NewHandler(contactRepo, jobQueue, cfg.Email.AdminAddress, logger)

	// Per-booking email history
	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public site API
	router.GET("/fleet", vehicleHandler.ListPublic)
	router.GET("/routes", routeHandler.ListPublic)
	router.GET("/routes/:id/quote", routeHandler.Quote)
	router.GET("/routes/:id/quotes", routeHandler.Quotes)
	router.POST("/bookings", bookingHandler.Create)
	router.GET("/bookings/:reference", bookingHandler.GetByReference)
	router.GET("/reviews", reviewHandler.ListPublic)
	router.POST("/reviews", reviewHandler.Create)
	router.GET("/blog", postHandler.ListPublic)
	router.GET("/blog/:slug", postHandler.GetBySlug)
	router.POST("/contact", contactHandler.Create)
	router.GET("/settings/discount", settingsHandler.GetDiscount)

	// Auth (public)
	router.POST("/auth/login", authHandler.Login)

	// Admin API (JWT required; staff roles)
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService))
	admin.Use(middleware.RequireRole("admin", "editor"))
	{
		// Staff accounts (admin only)
		admin.GET("/users", middleware.RequireRole("admin"), authHandler.List)
		admin.POST("/users", middleware.RequireRole("admin"), authHandler.CreateUser)

		// Site settings, including the discount campaign (admin only)
		admin.GET("/settings", middleware.RequireRole("admin"), settingsHandler.List)
		admin.PUT("/settings", middleware.RequireRole("admin"), settingsHandler.Update)

		// Fleet
		admin.GET("/vehicles", vehicleHandler.List)
		admin.POST("/vehicles", vehicleHandler.Create)
		admin.GET("/vehicles/:id", vehicleHandler.GetByID)
		admin.PATCH("/vehicles/:id", vehicleHandler.Update)
		admin.POST("/vehicles/:id/image", vehicleHandler.UploadImage)
		admin.POST("/vehicles/:id/image-url", vehicleHandler.GenerateUploadURL)
		admin.PUT("/vehicles/:id/image", vehicleHandler.RegisterImage)
		admin.DELETE("/vehicles/:id", middleware.RequireRole("admin"), vehicleHandler.Delete)

		// Routes and rates
		admin.GET("/routes", routeHandler.List)
		admin.POST("/routes", routeHandler.Create)
		admin.GET("/routes/:id", routeHandler.GetByID)
		admin.PATCH("/routes/:id", routeHandler.Update)
		admin.PUT("/routes/:id/rates", routeHandler.UpdateRates)
		admin.DELETE("/routes/:id", middleware.RequireRole("admin"), routeHandler.Delete)

		// Bookings
		admin.GET("/bookings", bookingHandler.List)
		admin.GET("/bookings/:id", bookingHandler.GetByID)
		admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
		admin.GET("/bookings/:id/emails", emailLogsHandler.ListByBooking)

		// Reviews moderation
		admin.GET("/reviews", reviewHandler.List)
		admin.PATCH("/reviews/:id", reviewHandler.Moderate)
		admin.DELETE("/reviews/:id", reviewHandler.Delete)

		// Blog
		admin.GET("/posts", postHandler.List)
		admin.POST("/posts", postHandler.Create)
		admin.GET("/posts/:id", postHandler.GetByID)
		admin.PATCH("/posts/:id", postHandler.Update)
		admin.POST("/posts/:id/cover", postHandler.UploadCover)
		admin.DELETE("/posts/:id", postHandler.Delete)

		// Contact inbox
		admin.GET("/contact-messages", contactHandler.List)
		admin.DELETE("/contact-messages/:id", contactHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
