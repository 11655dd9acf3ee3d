package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// allowedTransitions is the order state machine: the forward happy path,
// cancellation from any non-terminal state, and reinstatement out of
// cancelled.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPendingAdvance: {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing:     {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:        {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:      {},
	models.OrderStatusCancelled:      {models.OrderStatusPendingAdvance, models.OrderStatusProcessing},
}

// orderRefQuery scopes a query to an order referenced either by numeric id or
// by order number. The two cannot share one OR clause: Postgres rejects a
// non-numeric string compared against the integer id column.
func orderRefQuery(tx *gorm.DB, ref string) *gorm.DB {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return tx.Where("id = ?", id)
	}
	return tx.Where("order_number = ?", ref)
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChangeOrderStatus applies a status transition with its stock compensation
// in a single transaction: moving into cancelled restores each item's
// quantity, moving out of cancelled re-reserves it (clamped at zero).
// Re-applying the current status is a no-op, so compensation never runs
// twice for the same edge.
func ChangeOrderStatus(db *gorm.DB, orderID string, newStatus models.OrderStatus) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := orderRefQuery(tx.Preload("Items"), orderID).First(&order).Error; err != nil {
			return err
		}

		if order.Status == newStatus {
			return nil
		}
		if order.Status.Terminal() {
			return fmt.Errorf("order %s is already %s", order.OrderNumber, order.Status)
		}
		if !transitionAllowed(order.Status, newStatus) {
			return fmt.Errorf("cannot change order from %s to %s", order.Status, newStatus)
		}

		switch {
		case newStatus == models.OrderStatusCancelled:
			if err := RestoreStock(tx, order.Items); err != nil {
				return err
			}
		case order.Status == models.OrderStatusCancelled:
			if err := DecrementStock(tx, order.Items); err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("status", newStatus).Error
	})
}

// -------- Handlers --------

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler looks an order up by numeric id or order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := orderRefQuery(db.Preload("Items"), id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatusHandler drives the order state machine (admin).
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := models.ValidOrderStatus(strings.ToLower(req.Status))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		if err := ChangeOrderStatus(db, orderID, newStatus); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Printf("❌ Status change failed for order %s: %v", orderID, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// UploadPaymentProofHandler lets the buyer attach their transfer screenshot
// after checkout, moving the advance to pending_verification.
func UploadPaymentProofHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		orderID := c.Param("orderID")

		var order models.Order
		if err := orderRefQuery(db, orderID).Where("user_id = ?", userID).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if order.AdvanceStatus == models.AdvanceStatusVerified {
			c.JSON(http.StatusBadRequest, gin.H{"error": "advance payment already verified"})
			return
		}

		file, err := c.FormFile("payment_proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_proof file is required"})
			return
		}
		proofURL, err := saveProofFile(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment proof"})
			return
		}

		if err := db.Model(&order).Updates(map[string]interface{}{
			"payment_proof":  proofURL,
			"advance_status": models.AdvanceStatusPendingVerification,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment proof uploaded", "payment_proof": proofURL})
	}
}

// VerifyAdvancePaymentHandler marks the advance as verified (admin) and moves
// a pending_advance order into processing.
func VerifyAdvancePaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := orderRefQuery(tx, orderID).First(&order).Error; err != nil {
				return err
			}
			if order.AdvanceStatus == models.AdvanceStatusPendingUpload {
				return errors.New("no payment proof uploaded yet")
			}

			updates := map[string]interface{}{"advance_status": models.AdvanceStatusVerified}
			if order.Status == models.OrderStatusPendingAdvance {
				updates["status"] = models.OrderStatusProcessing
			}
			return tx.Model(&order).Updates(updates).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Advance payment verified"})
	}
}

// DeleteOrderHandler removes an order and its items (admin).
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// saveProofFile stores the uploaded screenshot under the payment_proofs
// folder and returns its public URL.
func saveProofFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(file.Filename, " ", "_"))
	saveDir := filepath.Join(uploadsDir(), "payment_proofs")
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return "/uploads/payment_proofs/" + filename, nil
}
