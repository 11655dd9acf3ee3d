package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentAccount holds the manual-payment instructions shown at checkout:
// bank account or mobile-wallet details plus an optional QR image. Payment is
// offline; the buyer transfers the advance and uploads a screenshot.
type PaymentAccount struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Method        PaymentMethod  `gorm:"type:VARCHAR(30);not null" json:"method"` // bank_transfer or mobile_wallet
	Provider      string         `gorm:"not null" json:"provider"`                // e.g. "Meezan Bank", "JazzCash"
	AccountTitle  string         `gorm:"not null" json:"account_title"`
	AccountNumber string         `gorm:"not null" json:"account_number"`
	QRImage       string         `json:"qr_image"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
