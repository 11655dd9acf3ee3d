package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/admin"
	paymentController "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/payment"
	productcontroller "github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/controllers/product"
)

// SetupPublicRoutes registers the unauthenticated storefront endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/banners", adminController.GetBanners(db))
	r.GET("/payment-accounts", paymentController.GetPaymentAccounts(db))
}
