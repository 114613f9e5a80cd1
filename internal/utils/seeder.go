package utils

import (
	"fmt"
	"strings"
	"time"

	"amazonia/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "Amazonia2025!"

var seedCategories = []models.Category{
	{Name: "Deforestación", Description: "Tala, expansión agrícola y pérdida de bosque primario"},
	{Name: "Minería ilegal", Description: "Dragas, mercurio y ríos contaminados"},
	{Name: "Pueblos indígenas", Description: "Territorios, consulta previa y defensores ambientales"},
	{Name: "Biodiversidad", Description: "Especies, áreas protegidas y corredores ecológicos"},
	{Name: "Clima", Description: "Sequías, incendios y el punto de no retorno amazónico"},
}

var seedBody = strings.Repeat(
	"La selva amazónica pierde cobertura a un ritmo que preocupa a las comunidades ribereñas. ", 4)

// SeedDatabase loads a working data set: categories, an editor, two
// reporters and articles across all four publication states.
func SeedDatabase(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{UID: uuid.NewString(), Email: "editora@amazonia.example", Password: string(hash),
			FirstName: "Marcela", LastName: "Rojas", Phone: "3100000001", Role: models.RoleEditor},
		{UID: uuid.NewString(), Email: "reportero1@amazonia.example", Password: string(hash),
			FirstName: "Iván", LastName: "Quintero", Phone: "3100000002", Role: models.RoleReporter},
		{UID: uuid.NewString(), Email: "reportera2@amazonia.example", Password: string(hash),
			FirstName: "Luisa", LastName: "Cabrera", Phone: "3100000003", Role: models.RoleReporter},
		{UID: uuid.NewString(), Email: "visitante@amazonia.example", Password: string(hash),
			FirstName: "Pedro", LastName: "Salazar", Phone: "3100000004", Role: models.RoleVisitor},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("seeding user %s: %w", users[i].Email, err)
		}
	}

	categories := make([]models.Category, len(seedCategories))
	copy(categories, seedCategories)
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			return fmt.Errorf("seeding category %s: %w", categories[i].Name, err)
		}
	}

	states := []models.ArticleState{
		models.StatePublished, models.StatePublished, models.StatePublished,
		models.StatePending, models.StateDraft, models.StateRejected,
	}
	reporters := users[1:3]

	for i, state := range states {
		reporter := reporters[i%len(reporters)]
		category := categories[i%len(categories)]
		created := time.Now().Add(-time.Duration(i*36) * time.Hour)

		article := models.Article{
			Title:      fmt.Sprintf("Crónica %d desde el río", i+1),
			Subtitle:   fmt.Sprintf("Lo que deja la temporada seca en %s", category.Name),
			Content:    seedBody,
			CategoryID: category.ID,
			Images:     []string{fmt.Sprintf("/uploads/noticias/%s/seed_%d.jpg", reporter.UID, i+1)},
			AuthorUID:  reporter.UID,
			CreatedAt:  created,
			UpdatedAt:  created,
			State:      state,
		}
		if err := db.Create(&article).Error; err != nil {
			return fmt.Errorf("seeding article %d: %w", i+1, err)
		}
	}

	zap.S().Infof("Seeded %d users, %d categories, %d articles",
		len(users), len(categories), len(states))
	return nil
}

// ClearDatabase removes all seeded collections. Irreversible.
func ClearDatabase(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.Article{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
		return err
	}
	return db.Where("1 = 1").Delete(&models.User{}).Error
}
