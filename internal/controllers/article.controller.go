package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"amazonia/internal/middleware"
	"amazonia/internal/models"
	"amazonia/internal/repository"
	"amazonia/internal/views"
	"amazonia/internal/workflow"

	"github.com/gin-gonic/gin"
)

const relatedLimit = 3

type ArticleController struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
}

func NewArticleController(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
) *ArticleController {
	return &ArticleController{articles: articles, categories: categories, users: users}
}

type articlePayload struct {
	Title      string   `json:"titulo" binding:"required"`
	Subtitle   string   `json:"subtitulo" binding:"required"`
	Content    string   `json:"contenido" binding:"required"`
	CategoryID string   `json:"categoriaId" binding:"required"`
	Images     []string `json:"imagen" binding:"required"`
}

// ListPublished godoc
// @Summary Public article listing
// @Description Published articles with search, category filter, sorting and pagination
// @Tags noticias
// @Produce json
// @Param busqueda query string false "Substring match on title, subtitle and body"
// @Param categoria query string false "Category id"
// @Param orden query string false "recientes | antiguos | a-z | z-a"
// @Param pagina query int false "Page number (9 items per page)"
// @Success 200 {object} map[string]interface{} "Listing page"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve articles"
// @Router /noticias [get]
func (ac *ArticleController) ListPublished(c *gin.Context) {
	articles, err := ac.articles.ListPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve articles",
			"error":   err.Error(),
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("pagina", "1"))
	listing := views.Listing(articles, views.ListingQuery{
		Search:     c.Query("busqueda"),
		CategoryID: c.Query("categoria"),
		Sort:       views.SortOrder(c.DefaultQuery("orden", string(views.SortNewest))),
		Page:       page,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles retrieved successfully",
		"data":    listing,
	})
}

// GetDetail godoc
// @Summary Article detail
// @Description One article with its category, author and up to three related published articles
// @Tags noticias
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} map[string]interface{} "Article detail"
// @Failure 404 {object} map[string]interface{} "Article not found"
// @Router /noticias/{id} [get]
func (ac *ArticleController) GetDetail(c *gin.Context) {
	article, err := ac.articles.FindByID(c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Article not found",
			"error":   "No article exists with the provided ID",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve article",
			"error":   err.Error(),
		})
		return
	}

	data := gin.H{"noticia": article}

	if category, err := ac.categories.FindByID(article.CategoryID); err == nil {
		data["categoria"] = category
	}
	if author, err := ac.users.FindByUID(article.AuthorUID); err == nil {
		// Public subset only
		data["autor"] = gin.H{"nombre": author.FirstName, "apellido": author.LastName}
	}

	// Related suggestions come from the published set, so drafts and
	// pending articles are never suggested.
	if published, err := ac.articles.ListPublished(); err == nil {
		data["relacionadas"] = views.Related(published, article, relatedLimit)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article retrieved successfully",
		"data":    data,
	})
}

// ListOwn returns the authenticated reporter's own queue, optionally
// filtered by state.
func (ac *ArticleController) ListOwn(c *gin.Context) {
	user := middleware.CurrentUser(c)

	articles, err := ac.articles.ListByAuthor(user.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve articles",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles retrieved successfully",
		"data":    views.FilterByState(articles, c.Query("estado")),
	})
}

// Create godoc
// @Summary Create a draft
// @Description Create an article in Borrador state owned by the authenticated reporter
// @Tags cms
// @Accept json
// @Produce json
// @Param noticia body articlePayload true "Article content"
// @Success 201 {object} map[string]interface{} "Article created"
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /cms/noticias [post]
func (ac *ArticleController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	article := models.Article{
		Title:      payload.Title,
		Subtitle:   payload.Subtitle,
		Content:    payload.Content,
		CategoryID: payload.CategoryID,
		Images:     payload.Images,
		AuthorUID:  user.UID,
	}

	id, err := ac.articles.Create(&article)
	if err != nil {
		status, message := writeErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Article created successfully",
		"data":    gin.H{"id": id, "noticia": article},
	})
}

// Update saves a content edit. The resulting state is always Borrador;
// any change requires a fresh review cycle.
func (ac *ArticleController) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	article, err := ac.articles.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Article not found",
			"error":   "No article exists with the provided ID",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve article",
			"error":   err.Error(),
		})
		return
	}

	if user.Role != models.RoleEditor && article.AuthorUID != user.UID {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You do not own this article",
			"error":   workflow.ErrNotAuthor.Error(),
		})
		return
	}

	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	updated, err := ac.articles.Update(id, map[string]interface{}{
		"titulo":      payload.Title,
		"subtitulo":   payload.Subtitle,
		"contenido":   payload.Content,
		"categoriaId": payload.CategoryID,
		"imagen":      payload.Images,
	})
	if err != nil {
		status, message := writeErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article updated successfully",
		"data":    updated,
	})
}

// Submit sends the article to review (Borrador|Rechazado -> Pendiente).
func (ac *ArticleController) Submit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	article, err := ac.articles.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Article not found",
			"error":   "No article exists with the provided ID",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve article",
			"error":   err.Error(),
		})
		return
	}

	if err := workflow.CanSubmit(article, user.UID); err != nil {
		status, message := transitionErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	if err := ac.articles.SetState(id, models.StatePending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to submit article",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article submitted for review",
		"data":    nil,
	})
}

// Delete permanently removes the article. Authors may delete their own
// while it is still editable; editors may delete anything.
func (ac *ArticleController) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	article, err := ac.articles.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Article not found",
			"error":   "No article exists with the provided ID",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve article",
			"error":   err.Error(),
		})
		return
	}

	if err := workflow.CanDelete(article, user); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You cannot delete this article",
			"error":   err.Error(),
		})
		return
	}

	if err := ac.articles.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete article",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Article deleted successfully",
		"data":    nil,
	})
}

func writeErrorStatus(err error) (int, string) {
	var validation *workflow.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, "Article does not meet the submission requirements"
	}
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound, "Article not found"
	}
	return http.StatusInternalServerError, "Operation failed"
}

func transitionErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, workflow.ErrNotAuthor), errors.Is(err, workflow.ErrNotEditor):
		return http.StatusForbidden, "You are not allowed to perform this action"
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrNotEditable), errors.Is(err, workflow.ErrInvalidState):
		return http.StatusConflict, "The article state does not allow this action"
	default:
		var validation *workflow.ValidationError
		if errors.As(err, &validation) {
			return http.StatusBadRequest, "Article does not meet the submission requirements"
		}
		return http.StatusInternalServerError, "Operation failed"
	}
}
