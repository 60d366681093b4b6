package repository

import (
	"github.com/galleria-dev/galleria/internal/models"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	// Replace deletes any existing reset row for the user and stores a
	// fresh one, so at most one token per user is ever live.
	Replace(userID uint, token string) (models.PasswordReset, error)
	GetByToken(token string) (models.PasswordReset, error)
	Delete(id uint) error
}

type GormPasswordResetRepository struct {
	conn *gorm.DB
}

func NewGormPasswordResetRepository(conn *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{conn: conn}
}

func (r *GormPasswordResetRepository) Replace(userID uint, token string) (models.PasswordReset, error) {
	if err := r.conn.Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.PasswordReset{}).Error; err != nil {
		return models.PasswordReset{}, err
	}

	reset := models.PasswordReset{UserID: userID, Token: token}

	if err := r.conn.Create(&reset).Error; err != nil {
		return models.PasswordReset{}, err
	}

	return reset, nil
}

func (r *GormPasswordResetRepository) GetByToken(token string) (models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.conn.Where("token = ?", token).First(&reset).Error
	return reset, translate(err)
}

func (r *GormPasswordResetRepository) Delete(id uint) error {
	return r.conn.Unscoped().Delete(&models.PasswordReset{}, id).Error
}
