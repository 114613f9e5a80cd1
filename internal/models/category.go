package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:nombre" json:"nombre" example:"Minería ilegal"`
	Description string `gorm:"column:descripcion" json:"descripcion"`
}

func (Category) TableName() string {
	return "categorias"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
