package repository

import (
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database"
	"github.com/taskhub-dev/taskhub/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) ListActive(skip, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("is_active = ?", true).
		Order("created_at ASC").
		Scopes(database.Paginate(skip, limit)).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
