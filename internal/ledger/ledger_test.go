package ledger

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"

	"bizdash/m/internal/migrations"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return NewService(db, zaptest.NewLogger(t))
}

func seedPhoneAndCustomer(t *testing.T, svc *Service) int64 {
	t.Helper()
	customerID, err := svc.AddCustomer("Jane Roe", "jane@example.com", 0, true)
	require.NoError(t, err)
	require.NoError(t, svc.SetStock("Phone", 10, time.Time{}))
	return customerID
}

func TestRecordSaleSuccess(t *testing.T) {
	svc := newTestService(t)
	customerID := seedPhoneAndCustomer(t, svc)

	saleID, err := svc.RecordSale("Phone", 3, 20000, 15000, customerID)
	require.NoError(t, err)
	assert.NotZero(t, saleID)

	sales, err := svc.ListSales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	sale := sales[0]
	assert.Equal(t, saleID, sale.ID)
	assert.Equal(t, "Phone", sale.Product)
	assert.Equal(t, int64(3), sale.Quantity)
	assert.Equal(t, 60000.0, sale.TotalSellingPrice)
	assert.Equal(t, 45000.0, sale.TotalBuyingPrice)
	assert.Equal(t, 15000.0, sale.Revenue)
	assert.Equal(t, sale.TotalSellingPrice-sale.TotalBuyingPrice, sale.Revenue)
	assert.Equal(t, customerID, sale.CustomerID)

	records, err := svc.ListInventory()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].Stock)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, int64(1), customers[0].Orders)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	svc := newTestService(t)
	customerID := seedPhoneAndCustomer(t, svc)

	_, err := svc.RecordSale("Phone", 11, 20000, 15000, customerID)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(10), insufficient.Available)
	assert.Equal(t, int64(11), insufficient.Requested)

	records, err := svc.ListInventory()
	require.NoError(t, err)
	assert.Equal(t, int64(10), records[0].Stock)

	sales, err := svc.ListSales()
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleUnknownCustomer(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.SetStock("Phone", 10, time.Time{}))

	_, err := svc.RecordSale("Phone", 1, 20000, 15000, 42)
	assert.ErrorIs(t, err, ErrUnknownCustomer)

	sales, err := svc.ListSales()
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	customerID, err := svc.AddCustomer("Jane Roe", "jane@example.com", 0, true)
	require.NoError(t, err)

	_, err = svc.RecordSale("Toaster", 1, 100, 80, customerID)
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	svc := newTestService(t)
	customerID := seedPhoneAndCustomer(t, svc)

	_, err := svc.RecordSale("Phone", 0, 20000, 15000, customerID)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// A fault after the sale insert but before the follow-up updates must
// leave all three tables untouched. The trigger forces the customer
// update to abort mid-transaction.
func TestRecordSaleAtomicOnMidTransactionFault(t *testing.T) {
	svc := newTestService(t)
	customerID := seedPhoneAndCustomer(t, svc)

	_, err := svc.db.Exec(`CREATE TRIGGER force_order_failure BEFORE UPDATE ON customers
                BEGIN SELECT RAISE(ABORT, 'forced failure'); END;`)
	require.NoError(t, err)

	_, err = svc.RecordSale("Phone", 3, 20000, 15000, customerID)
	require.ErrorIs(t, err, ErrStorageUnavailable)

	sales, err := svc.ListSales()
	require.NoError(t, err)
	assert.Empty(t, sales)

	records, err := svc.ListInventory()
	require.NoError(t, err)
	assert.Equal(t, int64(10), records[0].Stock)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Equal(t, int64(0), customers[0].Orders)
}

func TestSetStockRejectsNegative(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetStock("Phone", -1, time.Time{})
	assert.ErrorIs(t, err, ErrNegativeStock)

	records, err := svc.ListInventory()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSetStockUpsertKeepsOneRowPerProduct(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SetStock("Phone", 5, time.Time{}))
	records, err := svc.ListInventory()
	require.NoError(t, err)
	require.Len(t, records, 1)
	firstID := records[0].ID

	require.NoError(t, svc.SetStock("Phone", 12, time.Time{}))
	records, err = svc.ListInventory()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, firstID, records[0].ID)
	assert.Equal(t, int64(12), records[0].Stock)
}

func TestAddCustomerDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCustomer("Jane Roe", "jane@example.com", 0, true)
	require.NoError(t, err)

	_, err = svc.AddCustomer("Other Jane", "jane@example.com", 0, false)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestOrdersNeverDecrement(t *testing.T) {
	svc := newTestService(t)
	customerID := seedPhoneAndCustomer(t, svc)

	for i := 0; i < 3; i++ {
		_, err := svc.RecordSale("Phone", 1, 100, 80, customerID)
		require.NoError(t, err)
	}
	// A rejected sale leaves the count alone.
	_, err := svc.RecordSale("Phone", 100, 100, 80, customerID)
	require.Error(t, err)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Equal(t, int64(3), customers[0].Orders)
}
