package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/cart"
	userControllers "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/user"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/middleware"
)

// SetupUserRoutes registers all "/user/*" and "/guest/*" endpoints.
// Both require a valid JWT (user or guest session).
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.PUT("/sync", cartControllers.SyncCart(db))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}
	}

	guestGroup := r.Group("/guest")
	guestGroup.Use(middleware.ValidateToken)
	{
		guestCart := guestGroup.Group("/cart")
		{
			guestCart.GET("/", cartControllers.GetGuestCart(db))
			guestCart.POST("/", cartControllers.UpdateGuestCartItem(db))
			guestCart.PUT("/sync", cartControllers.SyncGuestCart(db))
			guestCart.DELETE("/:item_id", cartControllers.DeleteGuestCartItem(db))
			guestCart.DELETE("/", cartControllers.ClearGuestCart(db))
		}
	}
}
