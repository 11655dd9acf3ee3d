package orderControllers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, regularPrice, salePrice float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:          name,
		RegularPrice:  regularPrice,
		SalePrice:     salePrice,
		StockQuantity: stock,
		Active:        true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return product
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:     "Ayesha Khan",
		Phone:    "03001234567",
		Email:    "ayesha@example.com",
		Street:   "14-B Gulberg III",
		City:     "Lahore",
		Province: "Punjab",
	}
}

func currentStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("failed to reload product %d: %v", id, err)
	}
	return product.StockQuantity
}
