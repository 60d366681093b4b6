package repository

import (
	"errors"

	"github.com/galleria-dev/galleria/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (models.User, error)
	GetByUsername(username string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	UsernameTaken(username string, excludeID uint) (bool, error)
	EmailTaken(email string, excludeID uint) (bool, error)
	Update(id uint, updates map[string]interface{}) error
	SaveToken(id uint, token string) error
	UpdatePassword(id uint, passwordHash string) error
}

type GormUserRepository struct {
	conn *gorm.DB
}

func NewGormUserRepository(conn *gorm.DB) *GormUserRepository {
	return &GormUserRepository{conn: conn}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.conn.Create(user).Error
}

func (r *GormUserRepository) GetByID(id uint) (models.User, error) {
	var user models.User
	err := r.conn.First(&user, id).Error
	return user, translate(err)
}

func (r *GormUserRepository) GetByUsername(username string) (models.User, error) {
	var user models.User
	err := r.conn.Where("username = ?", username).First(&user).Error
	return user, translate(err)
}

func (r *GormUserRepository) GetByEmail(email string) (models.User, error) {
	var user models.User
	err := r.conn.Where("email = ?", email).First(&user).Error
	return user, translate(err)
}

func (r *GormUserRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := r.conn.Model(&models.User{}).
		Where("username = ? AND id != ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.conn.Model(&models.User{}).
		Where("email = ? AND id != ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) Update(id uint, updates map[string]interface{}) error {
	return r.conn.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *GormUserRepository) SaveToken(id uint, token string) error {
	return r.conn.Model(&models.User{}).Where("id = ?", id).Update("token", token).Error
}

func (r *GormUserRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.conn.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
