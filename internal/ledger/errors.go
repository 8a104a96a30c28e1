package ledger

import (
	"errors"
	"fmt"
)

// ErrUnknownCustomer is returned when a sale references a customer id
// that does not exist.
var ErrUnknownCustomer = errors.New("customer does not exist")

// ErrUnknownProduct is returned when a sale names a product with no
// inventory row.
var ErrUnknownProduct = errors.New("product not found in inventory")

// ErrInvalidQuantity is returned when a sale requests a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrNegativeStock is returned when a stock update would set a
// negative level.
var ErrNegativeStock = errors.New("stock cannot be negative")

// ErrDuplicateEmail is returned when a new customer reuses an email
// already on file.
var ErrDuplicateEmail = errors.New("customer email already exists")

// ErrStorageUnavailable wraps faults from the storage layer itself.
// It is the only error callers should treat as unrecoverable.
var ErrStorageUnavailable = errors.New("storage unavailable")

// InsufficientStockError reports a sale rejected because the requested
// quantity exceeds the available stock.
type InsufficientStockError struct {
	Product   string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.Product, e.Available, e.Requested)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
