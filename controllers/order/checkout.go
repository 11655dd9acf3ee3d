package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/cache"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/mailer"
	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// -------- Request Structs --------

type CheckoutItemInput struct {
	ProductID  uint                `json:"product_id" binding:"required"`
	Quantity   int                 `json:"quantity" binding:"required,min=1"`
	Attributes models.AttributeMap `json:"attributes"`
	// PriceAtAdd is accepted for display parity with the client cart but is
	// never used for billing.
	PriceAtAdd float64 `json:"price_at_add"`
}

type PlaceOrderRequest struct {
	Items           []CheckoutItemInput    `json:"items" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	Notes           string                 `json:"notes"`
}

// -------- Helpers --------

// generateOrderNumber builds a human-readable, collision-free order reference.
func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder validates the cart snapshot, reserves stock and creates the
// order atomically. Stock is the only contended resource: the guarded
// decrement (stock_quantity >= quantity in the UPDATE predicate) makes
// concurrent checkouts on the same product serialize at the database, so the
// sum of committed decrements can never exceed the starting stock. Any
// failure inside the transaction rolls back every decrement and the order row.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest, proofURL string) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	method, ok := models.ValidPaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("invalid payment method %q", req.PaymentMethod)
	}
	if missing := req.ShippingAddress.Validate(); len(missing) > 0 {
		return nil, fmt.Errorf("missing shipping fields: %s", strings.Join(missing, ", "))
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for product %d", item.Quantity, item.ProductID)
		}
		if err := item.Attributes.Validate(); err != nil {
			return nil, err
		}
	}

	// Optimistic pre-check: reject obvious shortfalls before the transaction.
	// Advisory only; the transaction re-checks with authority.
	if err := precheckStock(db, req.Items); err != nil {
		return nil, err
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var orderItems []models.OrderItem
		var subtotal float64

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ? AND active = ?", item.ProductID, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return err
			}

			// Guarded decrement: zero rows affected means another checkout
			// got there first, and the whole transaction aborts.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   item.Quantity,
				}
			}

			// Billing uses the price read inside the transaction, never the
			// client-supplied price_at_add.
			unitPrice := product.EffectivePrice()
			subtotal += unitPrice * float64(item.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    unitPrice,
				Attributes:   item.Attributes,
				Quantity:     item.Quantity,
			})
		}

		totals := ComputeTotals(subtotal, method)

		advanceStatus := models.AdvanceStatusPendingUpload
		if proofURL != "" {
			advanceStatus = models.AdvanceStatusPendingVerification
		}

		order = models.Order{
			OrderNumber:     generateOrderNumber(),
			UserID:          userID,
			Items:           orderItems,
			ShippingAddress: req.ShippingAddress,
			Subtotal:        totals.Subtotal,
			ShippingCost:    totals.ShippingCost,
			Discount:        totals.Discount,
			TotalAmount:     totals.Total,
			AdvanceAmount:   totals.AdvanceAmount,
			PaymentMethod:   method,
			AdvanceStatus:   advanceStatus,
			Status:          models.OrderStatusPendingAdvance,
			PaymentProof:    proofURL,
			Notes:           req.Notes,
			CreatedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear the server-side cart mirror in the same transaction.
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err == nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// precheckStock reads every referenced product once and fails fast on
// inactive products or shortfalls, sparing the transaction the work.
func precheckStock(db *gorm.DB, items []CheckoutItemInput) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		product, found := byID[item.ProductID]
		if !found || !product.Active {
			return &ProductNotFoundError{ProductID: item.ProductID}
		}
		if item.Quantity > product.StockQuantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.StockQuantity,
				Requested:   item.Quantity,
			}
		}
	}
	return nil
}

// -------- Handler --------

// PlaceOrderHandler accepts either a JSON body or a multipart form with a
// "payload" JSON field plus an optional "payment_proof" screenshot. A proof
// that cannot be saved is non-fatal: the order proceeds with advance status
// pending_upload and the buyer is told to upload again.
func PlaceOrderHandler(db *gorm.DB, rdb *cache.Client, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		proofURL := ""
		proofFailed := false

		if strings.HasPrefix(c.ContentType(), "multipart/") {
			payload := c.PostForm("payload")
			if payload == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "payload field is required"})
				return
			}
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload: " + err.Error()})
				return
			}
			if file, err := c.FormFile("payment_proof"); err == nil {
				url, saveErr := saveProofFile(c, file)
				if saveErr != nil {
					log.Printf("❌ Payment proof could not be saved for user %s: %v", userID, saveErr)
					proofFailed = true
				} else {
					proofURL = url
				}
			}
		} else {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		// Double-submit guard. Held for a short TTL, released early on
		// failure so the buyer can fix their cart and retry.
		acquired, err := rdb.AcquireCheckout(c.Request.Context(), userID)
		if err != nil {
			log.Printf("⚠️ Idempotency check failed for user %s: %v", userID, err)
		} else if !acquired {
			c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateCheckout.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req, proofURL)
		if err != nil {
			rdb.ReleaseCheckout(c.Request.Context(), userID)

			var stockErr *InsufficientStockError
			var notFoundErr *ProductNotFoundError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusConflict, gin.H{
					"error":     stockErr.Error(),
					"product":   stockErr.ProductName,
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
			case errors.As(err, &notFoundErr):
				c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("❌ Order placement failed for user %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not place order, please try again"})
			}
			return
		}

		// The guard only needs to cover the in-flight window. Released after
		// commit so the buyer can place a second, distinct order right away.
		rdb.ReleaseCheckout(c.Request.Context(), userID)

		// Post-commit side effects are best-effort and must never undo the
		// order: email failures are retried inside the mailer, then logged
		// and swallowed.
		go func(o models.Order) {
			m.SendOrderConfirmation(&o)
			m.SendAdminAlert(&o)
		}(*order)
		broadcastNewOrder(*order)

		resp := gin.H{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"message":      "Order placed successfully",
		}
		if proofFailed {
			resp["warning"] = "Payment proof could not be processed, please upload it again"
		}
		c.JSON(http.StatusCreated, resp)
	}
}

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
