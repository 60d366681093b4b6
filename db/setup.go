package db

import (
	"github.com/galleria-dev/galleria/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.PasswordReset{},
		&models.ImageGallery{},
		&models.VideoGallery{},
		&models.Image{},
		&models.Video{},
	}

	return conn.AutoMigrate(tables...)
}
