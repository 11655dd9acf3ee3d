package models

import "time"

// GuestCart mirrors Cart for unauthenticated sessions.
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID   string          `gorm:"uniqueIndex" json:"guest_id"` // one cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
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
