package repository

import (
	"time"

	"github.com/galleria-dev/galleria/internal/models"
	"gorm.io/gorm"
)

// MediaRecord is the kind-neutral view of an uploaded image or video.
type MediaRecord struct {
	ID        uint
	GalleryID uint
	FileName  string
	FilePath  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type MediaRepository interface {
	// ListByUser returns every item across all galleries the user owns.
	ListByUser(userID uint) ([]MediaRecord, error)
	ListByGallery(galleryID uint) ([]MediaRecord, error)
	// GetByID enforces ownership through the gallery join.
	GetByID(userID, id uint) (MediaRecord, error)
	CountByGallery(galleryID uint) (int64, error)
	Create(galleryID uint, fileName, filePath string) (MediaRecord, error)
	UpdatePath(id uint, filePath string) error
	Delete(id uint) error
}

// GormImageRepository backs MediaRepository with the images table.
type GormImageRepository struct {
	conn *gorm.DB
}

func NewGormImageRepository(conn *gorm.DB) *GormImageRepository {
	return &GormImageRepository{conn: conn}
}

func (r *GormImageRepository) ListByUser(userID uint) ([]MediaRecord, error) {
	var images []models.Image
	err := r.conn.
		Joins("JOIN image_galleries ON image_galleries.id = images.gallery_id").
		Where("image_galleries.user_id = ?", userID).
		Order("images.id DESC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return imageRecords(images), nil
}

func (r *GormImageRepository) ListByGallery(galleryID uint) ([]MediaRecord, error) {
	var images []models.Image
	if err := r.conn.Where("gallery_id = ?", galleryID).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return imageRecords(images), nil
}

func (r *GormImageRepository) GetByID(userID, id uint) (MediaRecord, error) {
	var image models.Image
	err := r.conn.
		Joins("JOIN image_galleries ON image_galleries.id = images.gallery_id").
		Where("images.id = ? AND image_galleries.user_id = ?", id, userID).
		First(&image).Error
	if err != nil {
		return MediaRecord{}, translate(err)
	}
	return imageRecord(image), nil
}

func (r *GormImageRepository) CountByGallery(galleryID uint) (int64, error) {
	var count int64
	err := r.conn.Model(&models.Image{}).Where("gallery_id = ?", galleryID).Count(&count).Error
	return count, err
}

func (r *GormImageRepository) Create(galleryID uint, fileName, filePath string) (MediaRecord, error) {
	image := models.Image{GalleryID: galleryID, FileName: fileName, FilePath: filePath}
	if err := r.conn.Create(&image).Error; err != nil {
		return MediaRecord{}, err
	}
	return imageRecord(image), nil
}

func (r *GormImageRepository) UpdatePath(id uint, filePath string) error {
	return r.conn.Model(&models.Image{}).Where("id = ?", id).Update("file_path", filePath).Error
}

func (r *GormImageRepository) Delete(id uint) error {
	return r.conn.Unscoped().Delete(&models.Image{}, id).Error
}

func imageRecords(images []models.Image) []MediaRecord {
	records := make([]MediaRecord, 0, len(images))
	for _, img := range images {
		records = append(records, imageRecord(img))
	}
	return records
}

func imageRecord(img models.Image) MediaRecord {
	return MediaRecord{
		ID:        img.ID,
		GalleryID: img.GalleryID,
		FileName:  img.FileName,
		FilePath:  img.FilePath,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}

// GormVideoRepository backs MediaRepository with the videos table.
type GormVideoRepository struct {
	conn *gorm.DB
}

func NewGormVideoRepository(conn *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{conn: conn}
}

func (r *GormVideoRepository) ListByUser(userID uint) ([]MediaRecord, error) {
	var videos []models.Video
	err := r.conn.
		Joins("JOIN video_galleries ON video_galleries.id = videos.gallery_id").
		Where("video_galleries.user_id = ?", userID).
		Order("videos.id DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videoRecords(videos), nil
}

func (r *GormVideoRepository) ListByGallery(galleryID uint) ([]MediaRecord, error) {
	var videos []models.Video
	if err := r.conn.Where("gallery_id = ?", galleryID).Order("id").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videoRecords(videos), nil
}

func (r *GormVideoRepository) GetByID(userID, id uint) (MediaRecord, error) {
	var video models.Video
	err := r.conn.
		Joins("JOIN video_galleries ON video_galleries.id = videos.gallery_id").
		Where("videos.id = ? AND video_galleries.user_id = ?", id, userID).
		First(&video).Error
	if err != nil {
		return MediaRecord{}, translate(err)
	}
	return videoRecord(video), nil
}

func (r *GormVideoRepository) CountByGallery(galleryID uint) (int64, error) {
	var count int64
	err := r.conn.Model(&models.Video{}).Where("gallery_id = ?", galleryID).Count(&count).Error
	return count, err
}

func (r *GormVideoRepository) Create(galleryID uint, fileName, filePath string) (MediaRecord, error) {
	video := models.Video{GalleryID: galleryID, FileName: fileName, FilePath: filePath}
	if err := r.conn.Create(&video).Error; err != nil {
		return MediaRecord{}, err
	}
	return videoRecord(video), nil
}

func (r *GormVideoRepository) UpdatePath(id uint, filePath string) error {
	return r.conn.Model(&models.Video{}).Where("id = ?", id).Update("file_path", filePath).Error
}

func (r *GormVideoRepository) Delete(id uint) error {
	return r.conn.Unscoped().Delete(&models.Video{}, id).Error
}

func videoRecords(videos []models.Video) []MediaRecord {
	records := make([]MediaRecord, 0, len(videos))
	for _, v := range videos {
		records = append(records, videoRecord(v))
	}
	return records
}

func videoRecord(v models.Video) MediaRecord {
	return MediaRecord{
		ID:        v.ID,
		GalleryID: v.GalleryID,
		FileName:  v.FileName,
		FilePath:  v.FilePath,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
