package router

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/feebridge/feebridge/internal/api/v1"
	"github.com/feebridge/feebridge/internal/rest/middleware"
)

func SetupRouter(searchHandler *v1.SearchHandler, webhookHandler *v1.WebhookHandler) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", searchHandler.Health)
	router.GET("/search", searchHandler.Search)
	router.POST("/webhooks/razorpay", webhookHandler.HandlePaymentWebhook)

	return router
}
