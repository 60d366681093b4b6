package main

import (
	"log"

	"github.com/galleria-dev/galleria/db"
	"github.com/galleria-dev/galleria/internal/auth"
	"github.com/galleria-dev/galleria/internal/config"
	"github.com/galleria-dev/galleria/internal/handlers"
	"github.com/galleria-dev/galleria/internal/mailer"
	"github.com/galleria-dev/galleria/internal/middleware"
	"github.com/galleria-dev/galleria/internal/repository"
	"github.com/galleria-dev/galleria/internal/router"
	"github.com/galleria-dev/galleria/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := storage.NewDiskStorage(cfg.MediaRoot)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	var revoker auth.TokenRevoker
	if cfg.RedisAddr != "" {
		revoker = auth.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory token blacklist")
		revoker = auth.NewMemoryTokenRevoker()
	}

	users := repository.NewGormUserRepository(conn)
	resets := repository.NewGormPasswordResetRepository(conn)
	imageGalleries := repository.NewGormImageGalleryRepository(conn)
	videoGalleries := repository.NewGormVideoGalleryRepository(conn)
	images := repository.NewGormImageRepository(conn)
	videos := repository.NewGormVideoRepository(conn)

	mail := mailer.NewSMTPMailer(cfg.SMTP)

	authMiddleware := middleware.AuthMiddleware(tokens, users)

	r := router.NewRouter(router.Handlers{
		Auth:           handlers.NewAuthHandler(users, resets, store, tokens, revoker, mail, cfg.AppBaseURL),
		ImageGalleries: handlers.NewGalleryHandler("image", imageGalleries, images, store),
		VideoGalleries: handlers.NewGalleryHandler("video", videoGalleries, videos, store),
		Images:         handlers.NewMediaHandler("image", imageGalleries, images, store, cfg.MaxImageBytes, nil),
		Videos:         handlers.NewMediaHandler("video", videoGalleries, videos, store, cfg.MaxVideoBytes, cfg.AllowedVideoExtensions),
		AuthMiddleware: authMiddleware,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
