package models

import "gorm.io/gorm"

// Image is one uploaded file inside an ImageGallery. FilePath is
// relative to the media root and mirrors the on-disk location
// {username}/image/{gallery}/{filename}.
type Image struct {
	gorm.Model

	GalleryID uint   `gorm:"not null;index"`
	FileName  string `gorm:"not null"`
	FilePath  string `gorm:"not null"`
}

// Video is one uploaded file inside a VideoGallery.
type Video struct {
	gorm.Model

	GalleryID uint   `gorm:"not null;index"`
	FileName  string `gorm:"not null"`
	FilePath  string `gorm:"not null"`
}
