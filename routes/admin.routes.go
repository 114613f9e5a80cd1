package routes

import (
	"amazonia/internal/controllers"
	"amazonia/internal/middleware"
	"amazonia/internal/policy"

	"github.com/gin-gonic/gin"
)

func RegisterAdminRoutes(router *gin.Engine, guard *middleware.Guard, adminController *controllers.AdminController, categoryController *controllers.CategoryController) {
	adminRoutes := router.Group("/admin", guard.Require(policy.CapEnterAdmin))
	{
		adminRoutes.GET("/noticias", adminController.ListArticles)
		adminRoutes.POST("/noticias/:id/aprobar", adminController.Approve)
		adminRoutes.POST("/noticias/:id/rechazar", adminController.Reject)
		adminRoutes.PUT("/noticias/:id/estado", adminController.Override)
		adminRoutes.DELETE("/noticias/:id", adminController.DeleteArticle)

		adminRoutes.GET("/usuarios", adminController.ListUsers)
		adminRoutes.PUT("/usuarios/:uid/rol", adminController.ChangeUserRole)
		adminRoutes.DELETE("/usuarios/:uid", adminController.DeleteUser)

		adminRoutes.POST("/categorias", categoryController.Create)
		adminRoutes.PUT("/categorias/:id", categoryController.Update)
		adminRoutes.DELETE("/categorias/:id", categoryController.Delete)

		adminRoutes.GET("/estadisticas", adminController.Stats)
	}
}
