package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
	r.GET("/user/cart", auth, GetUserCart(db))
	r.POST("/user/cart", auth, UpdateCartItem(db))
	r.PUT("/user/cart/sync", auth, SyncCart(db))
	r.DELETE("/user/cart/:item_id", auth, DeleteCartItem(db))
	r.DELETE("/user/cart", auth, ClearUserCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, regular, sale float64) models.Product {
	t.Helper()

	p := models.Product{Name: name, RegularPrice: regular, SalePrice: sale, StockQuantity: 10, Active: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestUpdateCartItem_AddCapturesEffectivePrice(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 4000)
	r := newCartRouter(db, "user-1")

	rec := doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 4000.0, item.PriceAtAdd, "sale price wins while active")
}

func TestUpdateCartItem_PriceStaysFrozenOnQuantityChange(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 4000)
	r := newCartRouter(db, "user-1")

	rec := doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Sale ends, then the buyer bumps the quantity.
	require.NoError(t, db.Model(&product).Update("sale_price", 0).Error)

	rec = doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{ProductID: product.ID, Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 4000.0, item.PriceAtAdd, "quantity changes never touch the captured price")
}

func TestUpdateCartItem_AttributeSelectionsAreSeparateLines(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 0)
	r := newCartRouter(db, "user-1")

	rec := doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{
		ProductID:  product.ID,
		Quantity:   1,
		Attributes: models.AttributeMap{"size": "M", "color": "black"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{
		ProductID:  product.ID,
		Quantity:   1,
		Attributes: models.AttributeMap{"size": "L", "color": "black"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, "different size must open a new line")

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUpdateCartItem_RejectsUnknownAttributeKey(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 0)
	r := newCartRouter(db, "user-1")

	rec := doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{
		ProductID:  product.ID,
		Quantity:   1,
		Attributes: models.AttributeMap{"fabric": "silk"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncCart_PreservesClientPriceAtAdd(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 0)
	r := newCartRouter(db, "user-1")

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 2, "price_at_add": 4200},
		},
	}
	rec := doJSON(t, r, http.MethodPut, "/user/cart/sync", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", "user-1").First(&cart).Error)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4200.0, cart.Items[0].PriceAtAdd, "the price the buyer saw stays locked")
}

func TestSyncCart_FallsBackToLivePriceAndDropsMissingProducts(t *testing.T) {
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 4500)
	r := newCartRouter(db, "user-1")

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 1},
			{"product_id": 999, "quantity": 1, "price_at_add": 100},
		},
	}
	rec := doJSON(t, r, http.MethodPut, "/user/cart/sync", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", "user-1").First(&cart).Error)
	require.Len(t, cart.Items, 1, "a vanished product's line is dropped")
	assert.Equal(t, 4500.0, cart.Items[0].PriceAtAdd, "missing client price falls back to the live price")
}

func TestSyncGuestCart_MirrorsUserSync(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	product := seedCartProduct(t, db, "Abaya", 5000, 0)

	r := gin.New()
	r.PUT("/guest/cart/sync", func(c *gin.Context) {
		c.Set("user_id", "guest-1")
		c.Next()
	}, SyncGuestCart(db))

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 2, "price_at_add": 4200},
			{"product_id": 999, "quantity": 1},
		},
	}
	rec := doJSON(t, r, http.MethodPut, "/guest/cart/sync", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart models.GuestCart
	require.NoError(t, db.Preload("Items").Where("guest_id = ?", "guest-1").First(&cart).Error)
	require.Len(t, cart.Items, 1, "a vanished product's line is dropped")
	assert.Equal(t, 4200.0, cart.Items[0].PriceAtAdd, "client price kept verbatim")
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestDeleteAndClearCart(t *testing.T) {
	db := newTestDB(t)
	a := seedCartProduct(t, db, "Abaya-A", 5000, 0)
	b := seedCartProduct(t, db, "Abaya-B", 3000, 0)
	r := newCartRouter(db, "user-1")

	rec := doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{ProductID: a.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	var first models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doJSON(t, r, http.MethodPost, "/user/cart", CartItemInput{ProductID: b.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/user/cart/"+fmt.Sprint(first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)

	rec = doJSON(t, r, http.MethodDelete, "/user/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}
