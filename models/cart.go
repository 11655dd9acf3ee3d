package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem carries a frozen copy of the product's display fields plus the
// price at the moment it was added. PriceAtAdd is fixed once set and is not
// reconciled against the live product price on sync; billing at checkout uses
// the server-side price, the cart only shows what the buyer saw.
type CartItem struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CartID       uint         `gorm:"index" json:"cart_id"`
	ProductID    uint         `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	PriceAtAdd   float64      `json:"price_at_add"`
	Attributes   AttributeMap `gorm:"type:json" json:"attributes"`
	Quantity     int          `json:"quantity"`
	AddedAt      time.Time    `json:"added_at"`
}
