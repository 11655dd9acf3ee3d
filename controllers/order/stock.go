package orderControllers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// RestoreStock returns each order item's quantity to its product when an
// order is cancelled. Products deleted since the order was placed are
// skipped; the snapshot on the order is what matters historically.
func RestoreStock(db *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

// DecrementStock re-reserves stock when a cancelled order is reinstated.
// Read-then-clamped-subtract: if stock already dropped below the requested
// amount elsewhere, the result floors at zero instead of erroring.
func DecrementStock(db *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		newStock := product.StockQuantity - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := db.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock_quantity", newStock).Error; err != nil {
			return err
		}
	}
	return nil
}
