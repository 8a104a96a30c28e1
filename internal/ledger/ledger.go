package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bizdash/m/domain"
)

// Service provides the validated entry points for mutating and reading
// the sales ledger, inventory and customer list. Every caller,
// including bulk import and sample-data generation, goes through it.
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewService creates a Service bound to the given store handle.
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// RecordSale validates and records one sale. On success the sale row
// is inserted, the product's stock is decremented by quantity and the
// customer's order count is incremented, all in a single transaction.
// On any failure nothing is changed.
func (s *Service) RecordSale(product string, quantity int64, unitSellingPrice, unitBuyingPrice float64, customerID int64) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, storageErr(err)
	}
	defer tx.Rollback()

	// Validations read through the same transaction as the writes so
	// the stock seen here is the stock the decrement applies to.
	var existingID int64
	err = tx.Get(&existingID, `SELECT id FROM customers WHERE id = ?`, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownCustomer, customerID)
	}
	if err != nil {
		return 0, storageErr(err)
	}

	var stock int64
	err = tx.Get(&stock, `SELECT stock FROM inventory WHERE product = ?`, product)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownProduct, product)
	}
	if err != nil {
		return 0, storageErr(err)
	}
	if stock < quantity {
		return 0, &InsufficientStockError{Product: product, Available: stock, Requested: quantity}
	}

	saleDate := time.Now().Format(domain.TimeLayout)
	totalSelling := float64(quantity) * unitSellingPrice
	totalBuying := float64(quantity) * unitBuyingPrice
	revenue := totalSelling - totalBuying

	res, err := tx.Exec(`INSERT INTO sales (sale_date, product, quantity, total_selling_price, total_buying_price, revenue, customer_id)
                VALUES (?, ?, ?, ?, ?, ?, ?)`,
		saleDate, product, quantity, totalSelling, totalBuying, revenue, customerID)
	if err != nil {
		return 0, storageErr(err)
	}
	saleID, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(err)
	}

	if _, err := tx.Exec(`UPDATE inventory SET stock = stock - ?, last_updated = ? WHERE product = ?`,
		quantity, saleDate, product); err != nil {
		return 0, storageErr(err)
	}
	if _, err := tx.Exec(`UPDATE customers SET orders = orders + 1 WHERE id = ?`, customerID); err != nil {
		return 0, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr(err)
	}

	s.logger.Info("sale recorded",
		zap.Int64("sale_id", saleID),
		zap.String("product", product),
		zap.Int64("quantity", quantity),
		zap.Float64("revenue", revenue),
		zap.Int64("customer_id", customerID),
	)
	return saleID, nil
}

// SetStock sets the absolute stock level for a product, creating the
// inventory row if it does not exist. A zero lastUpdated means now.
// This is not a delta: the sale path decrements stock itself.
func (s *Service) SetStock(product string, stock int64, lastUpdated time.Time) error {
	if stock < 0 {
		return fmt.Errorf("%w: %s would be %d", ErrNegativeStock, product, stock)
	}
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	_, err := s.db.Exec(`INSERT INTO inventory (product, stock, last_updated) VALUES (?, ?, ?)
                ON CONFLICT(product) DO UPDATE SET stock = excluded.stock, last_updated = excluded.last_updated`,
		product, stock, lastUpdated.Format(domain.TimeLayout))
	if err != nil {
		return storageErr(err)
	}

	s.logger.Info("stock updated", zap.String("product", product), zap.Int64("stock", stock))
	return nil
}

// AddCustomer creates a customer and returns its id. Emails are unique
// across the full customer list.
func (s *Service) AddCustomer(name, email string, orders int64, isActive bool) (int64, error) {
	var existing string
	err := s.db.Get(&existing, `SELECT email FROM customers WHERE email = ?`, email)
	if err == nil {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, storageErr(err)
	}

	res, err := s.db.Exec(`INSERT INTO customers (name, email, orders, is_active) VALUES (?, ?, ?, ?)`,
		name, email, orders, isActive)
	if err != nil {
		return 0, storageErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(err)
	}

	s.logger.Info("customer added", zap.Int64("customer_id", id), zap.String("email", email))
	return id, nil
}

// ListSales returns the full sales ledger, oldest first.
func (s *Service) ListSales() ([]domain.Sale, error) {
	sales := []domain.Sale{}
	if err := s.db.Select(&sales, `SELECT id, sale_date, product, quantity, total_selling_price, total_buying_price, revenue, customer_id FROM sales ORDER BY id`); err != nil {
		return nil, storageErr(err)
	}
	return sales, nil
}

// ListInventory returns all inventory records ordered by product.
func (s *Service) ListInventory() ([]domain.InventoryRecord, error) {
	records := []domain.InventoryRecord{}
	if err := s.db.Select(&records, `SELECT id, product, stock, last_updated FROM inventory ORDER BY product`); err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// ListCustomers returns the full customer list, oldest first.
func (s *Service) ListCustomers() ([]domain.Customer, error) {
	customers := []domain.Customer{}
	if err := s.db.Select(&customers, `SELECT id, name, email, orders, is_active FROM customers ORDER BY id`); err != nil {
		return nil, storageErr(err)
	}
	return customers, nil
}
