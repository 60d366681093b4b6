package models

import "gorm.io/gorm"

// ImageGallery is a named, per-user collection of images. The gallery
// name is unique within the owning user's galleries, not globally.
type ImageGallery struct {
	gorm.Model

	UserID uint   `gorm:"not null;index;uniqueIndex:idx_image_gallery_user_name"`
	Name   string `gorm:"not null;uniqueIndex:idx_image_gallery_user_name"`

	Images []Image `gorm:"foreignKey:GalleryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// VideoGallery mirrors ImageGallery for the video kind.
type VideoGallery struct {
	gorm.Model

	UserID uint   `gorm:"not null;index;uniqueIndex:idx_video_gallery_user_name"`
	Name   string `gorm:"not null;uniqueIndex:idx_video_gallery_user_name"`

	Videos []Video `gorm:"foreignKey:GalleryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
