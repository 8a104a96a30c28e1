// Package seed fills an empty store with sample business activity so
// the dashboard has something to show. It is an ordinary caller of the
// ledger service: every write goes through the validated entry points.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"bizdash/m/internal/ledger"
)

var sampleProducts = []string{"Phone", "Tablet", "TV", "Appliance"}

// Generate seeds a handful of customers, stocks the demo products and
// records one randomized sale per product. Safe to call on a store
// that already has customers; existing emails are left alone.
func Generate(svc *ledger.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	customerIDs := make([]int64, 0, 10)
	for i := 1; i <= 10; i++ {
		// Roughly a quarter of sample customers are churned.
		active := i%4 != 0
		id, err := svc.AddCustomer(
			fmt.Sprintf("Sample Customer %d", i),
			fmt.Sprintf("customer%d@example.com", i),
			0, active)
		if errors.Is(err, ledger.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			logger.Warn("unable to seed customer", zap.Int("n", i), zap.Error(err))
			continue
		}
		customerIDs = append(customerIDs, id)
	}
	if len(customerIDs) == 0 {
		logger.Warn("no sample customers available, skipping sample sales")
		return
	}

	for _, product := range sampleProducts {
		stock := int64(rand.Intn(91) + 10)
		if err := svc.SetStock(product, stock, time.Time{}); err != nil {
			logger.Warn("unable to seed stock", zap.String("product", product), zap.Error(err))
			continue
		}

		quantity := int64(rand.Intn(10) + 1)
		if quantity > stock {
			quantity = stock
		}
		sellingPrice := 5000 + rand.Float64()*45000
		buyingPrice := sellingPrice * (0.6 + rand.Float64()*0.2)
		customerID := customerIDs[rand.Intn(len(customerIDs))]

		if _, err := svc.RecordSale(product, quantity, sellingPrice, buyingPrice, customerID); err != nil {
			logger.Warn("unable to seed sale", zap.String("product", product), zap.Error(err))
		}
	}

	logger.Info("sample data generated", zap.Int("customers", len(customerIDs)), zap.Int("products", len(sampleProducts)))
}
