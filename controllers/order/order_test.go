package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, items ...models.OrderItem) models.Order {
	t.Helper()

	order := models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          "user-1",
		Items:           items,
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodCOD,
		AdvanceStatus:   models.AdvanceStatusPendingUpload,
		Status:          status,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}

func orderStatus(t *testing.T, db *gorm.DB, id uint) models.OrderStatus {
	t.Helper()

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		t.Fatalf("failed to reload order %d: %v", id, err)
	}
	return order.Status
}

func TestChangeOrderStatus_CancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	a := seedProduct(t, db, "Abaya-A", 5000, 0, 8)
	b := seedProduct(t, db, "Abaya-B", 3000, 0, 4)

	order := seedOrder(t, db, models.OrderStatusPendingAdvance,
		models.OrderItem{ProductID: a.ID, ProductName: a.Name, UnitPrice: 5000, Quantity: 2},
		models.OrderItem{ProductID: b.ID, ProductName: b.Name, UnitPrice: 3000, Quantity: 1},
	)

	err := ChangeOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCancelled, orderStatus(t, db, order.ID))
	assert.Equal(t, 10, currentStock(t, db, a.ID))
	assert.Equal(t, 5, currentStock(t, db, b.ID))
}

func TestChangeOrderStatus_ReinstateReservesAgain(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-C", 5000, 0, 6)

	order := seedOrder(t, db, models.OrderStatusCancelled,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 2},
	)

	err := ChangeOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusProcessing)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, orderStatus(t, db, order.ID))
	assert.Equal(t, 4, currentStock(t, db, product.ID))
}

func TestChangeOrderStatus_ReinstateClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-D", 5000, 0, 1)

	order := seedOrder(t, db, models.OrderStatusCancelled,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 3},
	)

	err := ChangeOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusProcessing)
	require.NoError(t, err)

	assert.Equal(t, 0, currentStock(t, db, product.ID), "stock floors at zero instead of going negative")
}

func TestChangeOrderStatus_SameStatusIsNoOp(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-E", 5000, 0, 5)

	order := seedOrder(t, db, models.OrderStatusPendingAdvance,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 2},
	)

	require.NoError(t, ChangeOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusCancelled))
	assert.Equal(t, 7, currentStock(t, db, product.ID))

	// Re-sending cancelled must not restore a second time.
	require.NoError(t, ChangeOrderStatus(db, fmt.Sprint(order.ID), models.OrderStatusCancelled))
	assert.Equal(t, 7, currentStock(t, db, product.ID))
}

func TestChangeOrderStatus_InvalidTransitions(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-F", 5000, 0, 5)

	tests := []struct {
		from models.OrderStatus
		to   models.OrderStatus
	}{
		{models.OrderStatusDelivered, models.OrderStatusProcessing},
		{models.OrderStatusDelivered, models.OrderStatusCancelled},
		{models.OrderStatusPendingAdvance, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusPendingAdvance},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			order := seedOrder(t, db, tt.from,
				models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 1},
			)
			err := ChangeOrderStatus(db, fmt.Sprint(order.ID), tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.from, orderStatus(t, db, order.ID))
		})
	}

	// None of the rejected transitions may touch stock.
	assert.Equal(t, 5, currentStock(t, db, product.ID))
}

func TestChangeOrderStatus_LookupByOrderNumber(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-G", 5000, 0, 5)

	order := seedOrder(t, db, models.OrderStatusPendingAdvance,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 1},
	)

	err := ChangeOrderStatus(db, order.OrderNumber, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, orderStatus(t, db, order.ID))
}

func TestOrderRefQuery_SeparatesIDFromOrderNumber(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-J", 5000, 0, 5)

	order := seedOrder(t, db, models.OrderStatusPendingAdvance,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 1},
	)

	// By numeric id the query must hit the id column only.
	var byID models.Order
	require.NoError(t, orderRefQuery(db, fmt.Sprint(order.ID)).First(&byID).Error)
	assert.Equal(t, order.OrderNumber, byID.OrderNumber)

	// A non-numeric reference must never be compared against the integer id
	// column; it goes to order_number alone.
	var byNumber models.Order
	require.NoError(t, orderRefQuery(db, order.OrderNumber).First(&byNumber).Error)
	assert.Equal(t, order.ID, byNumber.ID)

	var missing models.Order
	err := orderRefQuery(db, "ORD-unknown").First(&missing).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetOrderByIDHandler_AcceptsOrderNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	product := seedProduct(t, db, "Abaya-K", 5000, 0, 5)

	order := seedOrder(t, db, models.OrderStatusPendingAdvance,
		models.OrderItem{ProductID: product.ID, ProductName: product.Name, UnitPrice: 5000, Quantity: 1},
	)

	r := gin.New()
	r.GET("/orders/:orderID", GetOrderByIDHandler(db))

	for _, ref := range []string{fmt.Sprint(order.ID), order.OrderNumber} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/"+ref, nil)
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "lookup by %q", ref)

		var got models.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, order.ID, got.ID)
	}
}

func TestChangeOrderStatus_MissingOrder(t *testing.T) {
	db := newTestDB(t)

	err := ChangeOrderStatus(db, "does-not-exist", models.OrderStatusProcessing)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRestoreStock_SkipsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	kept := seedProduct(t, db, "Abaya-H", 5000, 0, 2)
	gone := seedProduct(t, db, "Abaya-I", 3000, 0, 2)
	require.NoError(t, db.Delete(&gone).Error)

	err := RestoreStock(db, []models.OrderItem{
		{ProductID: kept.ID, Quantity: 3},
		{ProductID: gone.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, currentStock(t, db, kept.ID))
}
