package router

import (
	"time"

	"github.com/galleria-dev/galleria/internal/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	ImageGalleries *handlers.GalleryHandler
	VideoGalleries *handlers.GalleryHandler
	Images         *handlers.MediaHandler
	Videos         *handlers.MediaHandler
	AuthMiddleware gin.HandlerFunc
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Account endpoints; signup, signin, validators and the reset
		// flow are unauthenticated.
		api.POST("/signup", h.Auth.Signup)
		api.POST("/signin", h.Auth.Signin)
		api.POST("/sign_out", h.AuthMiddleware, h.Auth.SignOut)
		api.GET("/emailvalidator", h.Auth.ValidateEmail)
		api.POST("/emailvalidator", h.Auth.ValidateEmail)
		api.GET("/username-validator", h.Auth.ValidateUsername)
		api.POST("/username-validator", h.Auth.ValidateUsername)
		api.POST("/forget_password", h.Auth.ForgetPassword)
		api.POST("/reset_password/:token", h.Auth.ResetPassword)

		profile := api.Group("/userprofile", h.AuthMiddleware)
		{
			profile.GET("", h.Auth.GetProfile)
			profile.PUT("", h.Auth.UpdateProfile)
			profile.PATCH("", h.Auth.PatchProfile)
		}

		imageGalleries := api.Group("/image-gallery", h.AuthMiddleware)
		{
			imageGalleries.GET("", h.ImageGalleries.List)
			imageGalleries.GET("/:id", h.ImageGalleries.Get)
			imageGalleries.POST("", h.ImageGalleries.Create)
			imageGalleries.PUT("/:id", h.ImageGalleries.Rename)
			imageGalleries.DELETE("/:id", h.ImageGalleries.Delete)
		}

		videoGalleries := api.Group("/video-gallery", h.AuthMiddleware)
		{
			videoGalleries.GET("", h.VideoGalleries.List)
			videoGalleries.GET("/:id", h.VideoGalleries.Get)
			videoGalleries.POST("", h.VideoGalleries.Create)
			videoGalleries.PUT("/:id", h.VideoGalleries.Rename)
			videoGalleries.DELETE("/:id", h.VideoGalleries.Delete)
		}

		images := api.Group("/image", h.AuthMiddleware)
		{
			images.GET("", h.Images.List)
			images.GET("/:id", h.Images.Get)
			images.POST("", h.Images.Upload)
			images.DELETE("/:id", h.Images.Delete)
		}

		videos := api.Group("/video", h.AuthMiddleware)
		{
			videos.GET("", h.Videos.List)
			videos.GET("/:id", h.Videos.Get)
			videos.POST("", h.Videos.Upload)
			videos.DELETE("/:id", h.Videos.Delete)
		}
	}

	return r
}
