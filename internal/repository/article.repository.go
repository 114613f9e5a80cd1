package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"amazonia/internal/models"
	"amazonia/internal/workflow"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publishedCacheKey = "noticias:publicadas"
	cacheExpiration   = 30 * time.Minute
)

var ErrNotFound = errors.New("record not found")

// Content fields an Update call may carry. Anything else in the patch map
// is dropped.
var updatableFields = map[string]bool{
	"titulo":      true,
	"subtitulo":   true,
	"contenido":   true,
	"categoriaId": true,
	"imagen":      true,
}

type ArticleRepository interface {
	ListByAuthor(authorUID string) ([]models.Article, error)
	ListPublished() ([]models.Article, error)
	ListAll() ([]models.Article, error)
	FindByID(id string) (*models.Article, error)
	Create(article *models.Article) (string, error)
	Update(id string, fields map[string]interface{}) (*models.Article, error)
	SetState(id string, state models.ArticleState) error
	Delete(id string) error
	InFlight() int64
}

type articleRepository struct {
	db       *gorm.DB
	redis    *redis.Client
	ctx      context.Context
	inFlight atomic.Int64
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db, ctx: context.Background()}
}

func NewCachedArticleRepository(db *gorm.DB, redisClient *redis.Client) ArticleRepository {
	return &articleRepository{db: db, redis: redisClient, ctx: context.Background()}
}

// InFlight reports how many facade calls are currently outstanding.
// Advisory only, surfaced on /debug/stats.
func (r *articleRepository) InFlight() int64 {
	return r.inFlight.Load()
}

func (r *articleRepository) begin() func() {
	r.inFlight.Add(1)
	return func() { r.inFlight.Add(-1) }
}

// ListByAuthor returns the author's articles newest-first. The fetch is
// unsorted and ordering happens here, so the guarantee holds even without
// a composite index on (autor_uid, fecha_creacion).
func (r *articleRepository) ListByAuthor(authorUID string) ([]models.Article, error) {
	defer r.begin()()

	var articles []models.Article
	if err := r.db.Where("autor_uid = ?", authorUID).Find(&articles).Error; err != nil {
		zap.S().Errorf("Error listing articles for author %s: %v", authorUID, err)
		return nil, err
	}
	sortNewestFirst(articles)
	return articles, nil
}

func (r *articleRepository) ListPublished() ([]models.Article, error) {
	defer r.begin()()

	if r.redis != nil {
		cached, err := r.redis.Get(r.ctx, publishedCacheKey).Result()
		if err == nil {
			var articles []models.Article
			if err := json.Unmarshal([]byte(cached), &articles); err == nil {
				return articles, nil
			}
		} else if err != redis.Nil {
			zap.S().Warnf("Published cache read failed: %v", err)
		}
	}

	var articles []models.Article
	if err := r.db.Where("estado = ?", models.StatePublished).Find(&articles).Error; err != nil {
		zap.S().Errorf("Error listing published articles: %v", err)
		return nil, err
	}
	sortNewestFirst(articles)

	if r.redis != nil {
		if data, err := json.Marshal(articles); err == nil {
			if err := r.redis.Set(r.ctx, publishedCacheKey, data, cacheExpiration).Err(); err != nil {
				zap.S().Warnf("Published cache write failed: %v", err)
			}
		}
	}
	return articles, nil
}

func (r *articleRepository) ListAll() ([]models.Article, error) {
	defer r.begin()()

	var articles []models.Article
	if err := r.db.Find(&articles).Error; err != nil {
		zap.S().Errorf("Error listing all articles: %v", err)
		return nil, err
	}
	sortNewestFirst(articles)
	return articles, nil
}

func (r *articleRepository) FindByID(id string) (*models.Article, error) {
	defer r.begin()()

	var article models.Article
	err := r.db.First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		zap.S().Errorf("Error loading article %s: %v", id, err)
		return nil, err
	}
	return &article, nil
}

// Create validates the draft, stamps both timestamps and forces the state
// to Borrador regardless of what the caller set.
func (r *articleRepository) Create(article *models.Article) (string, error) {
	defer r.begin()()

	if err := workflow.ValidateContent(article); err != nil {
		return "", err
	}

	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	article.State = models.StateDraft

	if err := r.db.Create(article).Error; err != nil {
		zap.S().Errorf("Error creating article: %v", err)
		return "", err
	}
	r.invalidatePublished()
	return article.ID, nil
}

// Update applies a content patch, stamps the modification time and forces
// the state back to Borrador. Any content change requires a fresh review
// cycle, even on a published article.
func (r *articleRepository) Update(id string, fields map[string]interface{}) (*models.Article, error) {
	defer r.begin()()

	var article models.Article
	err := r.db.First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	applyPatch(&article, fields)
	if err := workflow.ValidateContent(&article); err != nil {
		return nil, err
	}

	article.State = models.StateDraft
	article.UpdatedAt = time.Now()

	if err := r.db.Save(&article).Error; err != nil {
		zap.S().Errorf("Error updating article %s: %v", id, err)
		return nil, err
	}
	r.invalidatePublished()
	return &article, nil
}

// SetState applies a state transition without content validation. Used by
// submit, approve, reject and the editor override; actor checks happen in
// the workflow package before this is called.
func (r *articleRepository) SetState(id string, state models.ArticleState) error {
	defer r.begin()()

	result := r.db.Model(&models.Article{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":              state,
		"fecha_actualizacion": time.Now(),
	})
	if result.Error != nil {
		zap.S().Errorf("Error setting state of article %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidatePublished()
	return nil
}

// Delete is permanent. There is no soft delete or recovery path.
func (r *articleRepository) Delete(id string) error {
	defer r.begin()()

	result := r.db.Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		zap.S().Errorf("Error deleting article %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidatePublished()
	return nil
}

func (r *articleRepository) invalidatePublished() {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(r.ctx, publishedCacheKey).Err(); err != nil {
		zap.S().Warnf("Failed to invalidate published cache: %v", err)
	}
}

func applyPatch(article *models.Article, fields map[string]interface{}) {
	for key, value := range fields {
		if !updatableFields[key] {
			continue
		}
		switch key {
		case "titulo":
			if v, ok := value.(string); ok {
				article.Title = v
			}
		case "subtitulo":
			if v, ok := value.(string); ok {
				article.Subtitle = v
			}
		case "contenido":
			if v, ok := value.(string); ok {
				article.Content = v
			}
		case "categoriaId":
			if v, ok := value.(string); ok {
				article.CategoryID = v
			}
		case "imagen":
			if v, ok := value.([]string); ok {
				article.Images = v
			}
		}
	}
}

func sortNewestFirst(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
}
