package routes

import (
	"amazonia/internal/controllers"
	"amazonia/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController) {
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(), authController.Me)
		authRoutes.PUT("/profile", middleware.AuthMiddleware(), authController.UpdateProfile)
		authRoutes.POST("/logout", middleware.AuthMiddleware(), authController.Logout)
	}
}
