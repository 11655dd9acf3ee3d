package paymentController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

// Payment accounts are the manual-payment instructions shown at checkout:
// where to send the bank transfer or wallet payment, with an optional QR
// image. Admin-managed, publicly listed.

// POST /admin/payment-accounts
func CreatePaymentAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		methodStr := c.PostForm("method")
		provider := c.PostForm("provider")
		accountTitle := c.PostForm("account_title")
		accountNumber := c.PostForm("account_number")
		if methodStr == "" || provider == "" || accountTitle == "" || accountNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method, provider, account_title and account_number are required"})
			return
		}
		method, ok := models.ValidPaymentMethod(methodStr)
		if !ok || method == models.PaymentMethodCOD {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method must be bank_transfer or mobile_wallet"})
			return
		}

		var qrURL string
		if file, err := c.FormFile("qr_image"); err == nil {
			saveDir := filepath.Join(uploadsDir(), "qrcodes")
			if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
				return
			}
			filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(file.Filename, " ", "_"))
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save QR image"})
				return
			}
			qrURL = "/uploads/qrcodes/" + filename
		}

		account := models.PaymentAccount{
			Method:        method,
			Provider:      provider,
			AccountTitle:  accountTitle,
			AccountNumber: accountNumber,
			QRImage:       qrURL,
		}
		if err := db.Create(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment account"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

// GET /payment-accounts is public, consumed by the checkout page.
func GetPaymentAccounts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var accounts []models.PaymentAccount
		if err := db.Order("created_at DESC").Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment accounts"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

// DELETE /admin/payment-accounts/:id
func DeletePaymentAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := db.Delete(&models.PaymentAccount{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment account deleted"})
	}
}

func uploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
