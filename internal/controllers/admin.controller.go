package controllers

import (
	"errors"
	"net/http"

	"amazonia/internal/middleware"
	"amazonia/internal/models"
	"amazonia/internal/policy"
	"amazonia/internal/repository"
	"amazonia/internal/session"
	"amazonia/internal/views"
	"amazonia/internal/workflow"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	articles   repository.ArticleRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	resolver   *session.Resolver
}

func NewAdminController(
	articles repository.ArticleRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	resolver *session.Resolver,
) *AdminController {
	return &AdminController{articles: articles, users: users, categories: categories, resolver: resolver}
}

// ListArticles godoc
// @Summary All articles for administrative review
// @Description Every article regardless of state, filterable by estado, autor and categoria (AND)
// @Tags admin
// @Produce json
// @Param estado query string false "Article state"
// @Param autor query string false "Author uid"
// @Param categoria query string false "Category id"
// @Success 200 {object} map[string]interface{} "Articles"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve articles"
// @Router /admin/noticias [get]
func (ad *AdminController) ListArticles(c *gin.Context) {
	articles, err := ad.articles.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve articles",
			"error":   err.Error(),
		})
		return
	}

	filtered := views.AdminFilter(articles, c.Query("estado"), c.Query("autor"), c.Query("categoria"))

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Articles retrieved successfully",
		"data":    filtered,
	})
}

// Approve publishes a pending article (Pendiente -> Publicado).
func (ad *AdminController) Approve(c *gin.Context) {
	ad.review(c, models.StatePublished, workflow.CanApprove, "Article published")
}

// Reject sends a pending article back to its author (Pendiente -> Rechazado).
func (ad *AdminController) Reject(c *gin.Context) {
	ad.review(c, models.StateRejected, workflow.CanReject, "Article rejected")
}

func (ad *AdminController) review(
	c *gin.Context,
	target models.ArticleState,
	check func(*models.Article, *models.User) error,
	okMessage string,
) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	article, err := ad.articles.FindByID(id)
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

	if err := check(article, user); err != nil {
		status, message := transitionErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	if err := ad.articles.SetState(id, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to change article state",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": okMessage,
		"data":    nil,
	})
}

type statePayload struct {
	State models.ArticleState `json:"estado" binding:"required"`
}

// Override sets an arbitrary state on any article. This is the
// administrative reset; no content validation happens here.
func (ad *AdminController) Override(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := c.Param("id")

	var payload statePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if err := workflow.CanOverride(payload.State, user); err != nil {
		status, message := transitionErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}

	if err := ad.articles.SetState(id, payload.State); err != nil {
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
		"message": "Article state updated",
		"data":    nil,
	})
}

// DeleteArticle removes any article regardless of state.
func (ad *AdminController) DeleteArticle(c *gin.Context) {
	if err := ad.articles.Delete(c.Param("id")); err != nil {
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
		"message": "Article deleted successfully",
		"data":    nil,
	})
}

// ListUsers returns every usuario, optionally filtered by a free-text
// match across name, email and role.
func (ad *AdminController) ListUsers(c *gin.Context) {
	users, err := ad.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve users",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Users retrieved successfully",
		"data":    views.FilterUsers(users, c.Query("busqueda")),
	})
}

type rolePayload struct {
	Role models.Role `json:"rol" binding:"required"`
}

// ChangeUserRole godoc
// @Summary Change a user's role
// @Description Editors may change any role except their own
// @Tags admin
// @Accept json
// @Produce json
// @Param uid path string true "User uid"
// @Param data body rolePayload true "New role"
// @Success 200 {object} map[string]interface{} "Role updated"
// @Failure 400 {object} map[string]interface{} "Self-targeting or invalid role"
// @Router /admin/usuarios/{uid}/rol [put]
func (ad *AdminController) ChangeUserRole(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	targetUID := c.Param("uid")

	// Rejected before any store call
	if err := policy.CheckRoleChange(actor.UID, targetUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
			"error":   "self-target",
		})
		return
	}

	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	if !payload.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Unknown role",
			"error":   string(payload.Role),
		})
		return
	}

	if err := ad.users.UpdateRole(targetUID, payload.Role); err != nil {
		status, message := userErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}
	// Drop the cached session so the new role applies on the next guard
	ad.resolver.Invalidate(c.Request.Context(), targetUID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Role updated successfully",
		"data":    nil,
	})
}

// DeleteUser removes a usuario document. Self-deletion is rejected.
func (ad *AdminController) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	targetUID := c.Param("uid")

	if err := policy.CheckUserDelete(actor.UID, targetUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
			"error":   "self-target",
		})
		return
	}

	if err := ad.users.Delete(targetUID); err != nil {
		status, message := userErrorStatus(err)
		c.JSON(status, gin.H{
			"status":  "error",
			"message": message,
			"error":   err.Error(),
		})
		return
	}
	ad.resolver.Invalidate(c.Request.Context(), targetUID)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted successfully",
		"data":    nil,
	})
}

// Stats aggregates totals for the admin dashboard.
func (ad *AdminController) Stats(c *gin.Context) {
	users, err := ad.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute statistics",
			"error":   err.Error(),
		})
		return
	}
	articles, err := ad.articles.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute statistics",
			"error":   err.Error(),
		})
		return
	}
	categories, err := ad.categories.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to compute statistics",
			"error":   err.Error(),
		})
		return
	}

	byState := make(map[string]int)
	for _, a := range articles {
		byState[string(a.State)]++
	}
	byRole := make(map[string]int)
	for _, u := range users {
		byRole[string(u.Role)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Statistics computed successfully",
		"data": gin.H{
			"totalUsuarios":     len(users),
			"totalNoticias":     len(articles),
			"totalCategorias":   len(categories),
			"noticiasPorEstado": byState,
			"usuariosPorRol":    byRole,
		},
	})
}

func userErrorStatus(err error) (int, string) {
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound, "User not found"
	}
	return http.StatusInternalServerError, "Operation failed"
}
