package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AttributeMap holds attribute selections for a product (size, colour, ...).
// Stored as a JSON column. Keys are restricted to a closed set so arbitrary
// client payloads never reach the database.
type AttributeMap map[string]string

var allowedAttributes = map[string]bool{
	"size":   true,
	"color":  true,
	"length": true,
	"sleeve": true,
}

// Validate rejects unknown attribute keys and empty values.
func (a AttributeMap) Validate() error {
	for k, v := range a {
		if !allowedAttributes[k] {
			return fmt.Errorf("unknown attribute %q", k)
		}
		if v == "" {
			return fmt.Errorf("attribute %q has empty value", k)
		}
	}
	return nil
}

func (a AttributeMap) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*a = AttributeMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for AttributeMap")
	}
}

type Product struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	RegularPrice float64 `gorm:"not null" json:"regular_price"` // authoritative base price
	SalePrice    float64 `json:"sale_price"`                    // effective when > 0
	Image        string  `json:"image"`
	// Options the storefront offers for this product, e.g. {"size": "52,54,56"}.
	AttributeOptions AttributeMap   `gorm:"type:json" json:"attribute_options"`
	Categories       []Category     `gorm:"many2many:product_categories;" json:"categories"`
	StockQuantity    int            `gorm:"not null;default:0" json:"stock_quantity"`
	Active           bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is the unit price used for billing: the sale price when one
// is set, otherwise the regular price. Client-supplied prices are never used.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.RegularPrice
}
