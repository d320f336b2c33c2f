package routes

import (
	"learnhub-backend/controllers"
	"learnhub-backend/middleware"
	"learnhub-backend/services"

	"github.com/gin-gonic/gin"
)

func RegisterLessonRoutes(r *gin.Engine, lc *controllers.LessonController) {
	lessonRoutes := r.Group("/lessons")
	{
		lessonRoutes.GET("", lc.GetLessons)
		lessonRoutes.GET("/:id", lc.GetLessonByID)
		lessonRoutes.PUT("/:id", lc.UpdateLesson)
	}

	r.GET("/search", lc.SearchLessons)
}

func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController, tokens *services.TokenService) {
	orderRoutes := r.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware(tokens))
	{
		orderRoutes.POST("", oc.CreateOrder)
		orderRoutes.GET("", oc.GetOrders)
		orderRoutes.GET("/:id", oc.GetOrderByID)
	}
}

func RegisterAuthRoutes(r *gin.Engine, ac *controllers.AuthController) {
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/signup", ac.Signup)
		authRoutes.POST("/login", ac.Login)
	}
}

func RegisterImageRoutes(r *gin.Engine, ic *controllers.ImageController) {
	r.GET("/images/:filename", ic.GetImage)
}
