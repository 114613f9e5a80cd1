package routes

import (
	"amazonia/internal/controllers"
	"amazonia/internal/middleware"
	"amazonia/internal/policy"

	"github.com/gin-gonic/gin"
)

// RegisterCMSRoutes wires the reporter dashboard. The whole group sits
// behind the enter-cms guard; image upload additionally requires the
// upload-image capability.
func RegisterCMSRoutes(router *gin.Engine, guard *middleware.Guard, articleController *controllers.ArticleController, uploadController *controllers.UploadController) {
	cmsRoutes := router.Group("/cms", guard.Require(policy.CapEnterCMS))
	{
		cmsRoutes.GET("/noticias", articleController.ListOwn)
		cmsRoutes.POST("/noticias", articleController.Create)
		cmsRoutes.PUT("/noticias/:id", articleController.Update)
		cmsRoutes.DELETE("/noticias/:id", articleController.Delete)
		cmsRoutes.POST("/noticias/:id/enviar", articleController.Submit)
		cmsRoutes.POST("/imagenes", guard.Require(policy.CapUploadImage), uploadController.Upload)
	}
}
