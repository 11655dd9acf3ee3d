package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/cache"
	orderControllers "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/order"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/mailer"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, rdb *cache.Client, m *mailer.Mailer) {
	orders := r.Group("/orders")
	{
		// Checkout and buyer-facing order endpoints (JWT: user or guest)
		orders.POST("/place", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, rdb, m))
		orders.POST("/:orderID/payment-proof", middleware.ValidateToken, orderControllers.UploadPaymentProofHandler(db))
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))

		// Admin order management
		admin := orders.Group("", middleware.ValidateAPIKey)
		{
			admin.GET("/", orderControllers.GetAllOrdersHandler(db))
			admin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			admin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			admin.PUT("/:orderID/verify-advance", orderControllers.VerifyAdvancePaymentHandler(db))
			admin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			admin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
	}
}
