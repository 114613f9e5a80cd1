package routes

import (
	"amazonia/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, articleController *controllers.ArticleController, categoryController *controllers.CategoryController) {
	router.GET("/noticias", articleController.ListPublished)
	router.GET("/noticias/:id", articleController.GetDetail)
	router.GET("/categorias", categoryController.List)
}
