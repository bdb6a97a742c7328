package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rmadesk/rma-portal/internal/auth"
	"github.com/rmadesk/rma-portal/internal/config"
	dbpkg "github.com/rmadesk/rma-portal/internal/db"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/observability"
	"github.com/rmadesk/rma-portal/internal/routes"
	"github.com/rmadesk/rma-portal/internal/storage"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg, logger)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMins)

	var store auth.TokenStore
	if cfg.RedisAddr != "" {
		store = auth.NewRedisTokenStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		logger.Info("token store ready", zap.String("driver", "redis"), zap.String("addr", cfg.RedisAddr))
	} else {
		store = auth.NewMemoryTokenStore()
		logger.Info("token store ready", zap.String("driver", "memory"))
	}

	var photos storage.PhotoStorage
	if cfg.StorageDriver == "s3" {
		photos = storage.NewS3Storage(cfg)
		logger.Info("photo storage ready", zap.String("driver", "s3"), zap.String("bucket", cfg.S3Bucket))
	} else {
		photos = storage.NewLocalStorage(cfg.UploadDir)
		logger.Info("photo storage ready", zap.String("driver", "local"), zap.String("dir", cfg.UploadDir))
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, tokens, store, photos)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
