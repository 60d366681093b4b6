package repository

import (
	"time"

	"github.com/galleria-dev/galleria/internal/models"
	"gorm.io/gorm"
)

// GalleryRecord is the kind-neutral view of an image or video gallery,
// so one handler set can serve both kinds.
type GalleryRecord struct {
	ID        uint
	UserID    uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GalleryRepository interface {
	ListByUser(userID uint) ([]GalleryRecord, error)
	GetByID(userID, id uint) (GalleryRecord, error)
	NameTaken(userID uint, name string) (bool, error)
	Create(userID uint, name string) (GalleryRecord, error)
	Rename(id uint, name string) error
	Delete(id uint) error
}

// GormImageGalleryRepository backs GalleryRepository with the
// image_galleries table.
type GormImageGalleryRepository struct {
	conn *gorm.DB
}

func NewGormImageGalleryRepository(conn *gorm.DB) *GormImageGalleryRepository {
	return &GormImageGalleryRepository{conn: conn}
}

func (r *GormImageGalleryRepository) ListByUser(userID uint) ([]GalleryRecord, error) {
	var galleries []models.ImageGallery
	if err := r.conn.Where("user_id = ?", userID).Order("id DESC").Find(&galleries).Error; err != nil {
		return nil, err
	}

	records := make([]GalleryRecord, 0, len(galleries))
	for _, g := range galleries {
		records = append(records, imageGalleryRecord(g))
	}
	return records, nil
}

func (r *GormImageGalleryRepository) GetByID(userID, id uint) (GalleryRecord, error) {
	var gallery models.ImageGallery
	err := r.conn.Where("id = ? AND user_id = ?", id, userID).First(&gallery).Error
	if err != nil {
		return GalleryRecord{}, translate(err)
	}
	return imageGalleryRecord(gallery), nil
}

func (r *GormImageGalleryRepository) NameTaken(userID uint, name string) (bool, error) {
	var count int64
	err := r.conn.Model(&models.ImageGallery{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *GormImageGalleryRepository) Create(userID uint, name string) (GalleryRecord, error) {
	gallery := models.ImageGallery{UserID: userID, Name: name}
	if err := r.conn.Create(&gallery).Error; err != nil {
		return GalleryRecord{}, err
	}
	return imageGalleryRecord(gallery), nil
}

func (r *GormImageGalleryRepository) Rename(id uint, name string) error {
	return r.conn.Model(&models.ImageGallery{}).Where("id = ?", id).Update("name", name).Error
}

func (r *GormImageGalleryRepository) Delete(id uint) error {
	if err := r.conn.Unscoped().Where("gallery_id = ?", id).Delete(&models.Image{}).Error; err != nil {
		return err
	}
	return r.conn.Unscoped().Delete(&models.ImageGallery{}, id).Error
}

func imageGalleryRecord(g models.ImageGallery) GalleryRecord {
	return GalleryRecord{
		ID:        g.ID,
		UserID:    g.UserID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GormVideoGalleryRepository backs GalleryRepository with the
// video_galleries table.
type GormVideoGalleryRepository struct {
	conn *gorm.DB
}

func NewGormVideoGalleryRepository(conn *gorm.DB) *GormVideoGalleryRepository {
	return &GormVideoGalleryRepository{conn: conn}
}

func (r *GormVideoGalleryRepository) ListByUser(userID uint) ([]GalleryRecord, error) {
	var galleries []models.VideoGallery
	if err := r.conn.Where("user_id = ?", userID).Order("id DESC").Find(&galleries).Error; err != nil {
		return nil, err
	}

	records := make([]GalleryRecord, 0, len(galleries))
	for _, g := range galleries {
		records = append(records, videoGalleryRecord(g))
	}
	return records, nil
}

func (r *GormVideoGalleryRepository) GetByID(userID, id uint) (GalleryRecord, error) {
	var gallery models.VideoGallery
	err := r.conn.Where("id = ? AND user_id = ?", id, userID).First(&gallery).Error
	if err != nil {
		return GalleryRecord{}, translate(err)
	}
	return videoGalleryRecord(gallery), nil
}

func (r *GormVideoGalleryRepository) NameTaken(userID uint, name string) (bool, error) {
	var count int64
	err := r.conn.Model(&models.VideoGallery{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *GormVideoGalleryRepository) Create(userID uint, name string) (GalleryRecord, error) {
	gallery := models.VideoGallery{UserID: userID, Name: name}
	if err := r.conn.Create(&gallery).Error; err != nil {
		return GalleryRecord{}, err
	}
	return videoGalleryRecord(gallery), nil
}

func (r *GormVideoGalleryRepository) Rename(id uint, name string) error {
	return r.conn.Model(&models.VideoGallery{}).Where("id = ?", id).Update("name", name).Error
}

func (r *GormVideoGalleryRepository) Delete(id uint) error {
	if err := r.conn.Unscoped().Where("gallery_id = ?", id).Delete(&models.Video{}).Error; err != nil {
		return err
	}
	return r.conn.Unscoped().Delete(&models.VideoGallery{}, id).Error
}

func videoGalleryRecord(g models.VideoGallery) GalleryRecord {
	return GalleryRecord{
		ID:        g.ID,
		UserID:    g.UserID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
