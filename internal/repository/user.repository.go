package repository

import (
	"errors"
	"sort"
	"strings"

	"amazonia/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByUID(uid string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	UpdateProfile(uid string, firstName, lastName, phone string) error
	UpdateRole(uid string, role models.Role) error
	Delete(uid string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		zap.S().Errorf("Error creating user: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) FindByUID(uid string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every usuario document ordered by first name, the way the
// admin dashboard displays them.
func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		zap.S().Errorf("Error listing users: %v", err)
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].FirstName) < strings.ToLower(users[j].FirstName)
	})
	return users, nil
}

func (r *userRepository) UpdateProfile(uid string, firstName, lastName, phone string) error {
	result := r.db.Model(&models.User{}).Where("uid = ?", uid).Updates(map[string]interface{}{
		"nombre":   firstName,
		"apellido": lastName,
		"numero":   phone,
	})
	if result.Error != nil {
		zap.S().Errorf("Error updating profile of %s: %v", uid, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateRole(uid string, role models.Role) error {
	result := r.db.Model(&models.User{}).Where("uid = ?", uid).Update("rol", role)
	if result.Error != nil {
		zap.S().Errorf("Error updating role of %s: %v", uid, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(uid string) error {
	result := r.db.Delete(&models.User{}, "uid = ?", uid)
	if result.Error != nil {
		zap.S().Errorf("Error deleting user %s: %v", uid, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
