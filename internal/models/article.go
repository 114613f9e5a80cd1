package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleState is the publication state of an article. The Spanish values
// are the persisted contract and must not be renamed.
type ArticleState string

const (
	StateDraft     ArticleState = "Borrador"
	StatePending   ArticleState = "Pendiente"
	StatePublished ArticleState = "Publicado"
	StateRejected  ArticleState = "Rechazado"
)

func (s ArticleState) Valid() bool {
	switch s {
	case StateDraft, StatePending, StatePublished, StateRejected:
		return true
	}
	return false
}

type Article struct {
	ID         string       `gorm:"primaryKey" json:"id" example:"f4f9a2c1"`
	Title      string       `gorm:"column:titulo" json:"titulo" example:"Deforestación en el Putumayo"`
	Subtitle   string       `gorm:"column:subtitulo" json:"subtitulo"`
	Content    string       `gorm:"column:contenido" json:"contenido"`
	CategoryID string       `gorm:"column:categoria_id;index" json:"categoriaId"`
	Images     []string     `gorm:"column:imagen;serializer:json;type:jsonb" json:"imagen"`
	AuthorUID  string       `gorm:"column:autor_uid;index" json:"autorUid"`
	CreatedAt  time.Time    `gorm:"column:fecha_creacion" json:"fechaCreacion" example:"2025-01-01T00:00:00Z"`
	UpdatedAt  time.Time    `gorm:"column:fecha_actualizacion" json:"fechaActualizacion" example:"2025-01-01T00:00:00Z"`
	State      ArticleState `gorm:"column:estado;index" json:"estado" example:"Borrador"`
}

func (Article) TableName() string {
	return "noticias"
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
