package models

import "time"

type OrderStatus string
type AdvancePaymentStatus string
type PaymentMethod string

const (
	// Order lifecycle. Forward path is pending_advance -> processing ->
	// shipped -> delivered; cancelled is reachable from any non-terminal
	// state and can be reinstated.
	OrderStatusPendingAdvance OrderStatus = "pending_advance" // placed, advance payment awaited
	OrderStatusProcessing     OrderStatus = "processing"      // advance verified, being prepared
	OrderStatusShipped        OrderStatus = "shipped"         // handed to courier
	OrderStatusDelivered      OrderStatus = "delivered"       // received by customer
	OrderStatusCancelled      OrderStatus = "cancelled"

	// Advance-payment verification.
	AdvanceStatusPendingUpload       AdvancePaymentStatus = "pending_upload"       // no proof yet
	AdvanceStatusPendingVerification AdvancePaymentStatus = "pending_verification" // proof uploaded
	AdvanceStatusVerified            AdvancePaymentStatus = "verified"

	// Payment methods. Non-COD orders pay the full total up front and get
	// the prepaid discount; COD orders pay a partial advance deposit.
	PaymentMethodCOD          PaymentMethod = "cash_on_delivery"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileWallet PaymentMethod = "mobile_wallet"
)

// ShippingAddress is embedded in Order. All fields are required at checkout.
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Province string `json:"province"`
}

type Order struct {
	ID              uint                 `gorm:"primaryKey" json:"id"`
	OrderNumber     string               `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          string               `gorm:"index" json:"user_id"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress      `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Subtotal        float64              `json:"subtotal"`
	ShippingCost    float64              `json:"shipping_cost"`
	Discount        float64              `json:"discount"`
	TotalAmount     float64              `json:"total_amount"`
	AdvanceAmount   float64              `json:"advance_amount"`
	PaymentMethod   PaymentMethod        `gorm:"type:VARCHAR(30);not null" json:"payment_method"`
	AdvanceStatus   AdvancePaymentStatus `gorm:"type:VARCHAR(30);default:'pending_upload'" json:"advance_payment_status"`
	Status          OrderStatus          `gorm:"type:VARCHAR(30);default:'pending_advance'" json:"status"`
	PaymentProof    string               `json:"payment_proof"`
	Notes           string               `json:"notes"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// OrderItem is an immutable snapshot taken at checkout. It keeps no live
// reference to Product, so later product edits or deletion cannot corrupt
// historical orders.
type OrderItem struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	OrderID      uint         `gorm:"index" json:"order_id"`
	ProductID    uint         `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	UnitPrice    float64      `json:"unit_price"`
	Attributes   AttributeMap `gorm:"type:json" json:"attributes"`
	Quantity     int          `json:"quantity"`
}

// Terminal reports whether no further transitions are allowed out of s,
// other than cancellation reinstatement rules handled by the order handlers.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// ValidOrderStatus maps a request string onto a known status.
func ValidOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPendingAdvance, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// ValidPaymentMethod maps a request string onto a known payment method.
func ValidPaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodMobileWallet:
		return PaymentMethod(s), true
	}
	return "", false
}

// Validate checks that every required shipping field is present.
func (a ShippingAddress) Validate() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"email", a.Email},
		{"street", a.Street},
		{"city", a.City},
		{"province", a.Province},
	}
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
