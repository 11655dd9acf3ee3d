package orderControllers

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrDuplicateCheckout = errors.New("checkout already in progress")
)

// ProductNotFoundError is returned when a cart line references a product that
// no longer exists or is inactive. The order is not created.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found or inactive", e.ProductID)
}

// InsufficientStockError is returned by the pre-check or by the transactional
// re-check. In either case no stock is mutated and no order is created.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}
