package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/cache"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/mailer"
)

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *cache.Client, m *mailer.Mailer) {
	// Public storefront routes (no middleware)
	SetupPublicRoutes(r, db)

	// Auth routes (guest session issuance)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)

	// Order routes (checkout + order management)
	SetupOrderRoutes(r, db, rdb, m)
}
