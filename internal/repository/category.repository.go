package repository

import (
	"errors"

	"amazonia/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	List() ([]models.Category, error)
	FindByID(id string) (*models.Category, error)
	Create(category *models.Category) (string, error)
	Update(id string, name, description string) error
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("nombre asc").Find(&categories).Error; err != nil {
		zap.S().Errorf("Error listing categories: %v", err)
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *models.Category) (string, error) {
	if err := r.db.Create(category).Error; err != nil {
		zap.S().Errorf("Error creating category: %v", err)
		return "", err
	}
	return category.ID, nil
}

func (r *categoryRepository) Update(id string, name, description string) error {
	result := r.db.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"nombre":      name,
		"descripcion": description,
	})
	if result.Error != nil {
		zap.S().Errorf("Error updating category %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the category without touching articles that reference
// it. Dangling categoriaId values are tolerated; views resolve them to an
// empty name.
func (r *categoryRepository) Delete(id string) error {
	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		zap.S().Errorf("Error deleting category %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
