package domain

// TimeLayout is the timestamp format used for sale_date and
// last_updated columns, matching the historical data files.
const TimeLayout = "2006-01-02 15:04:05"

// Sale is a single recorded transaction in the sales ledger.
// Sales are immutable once written.
type Sale struct {
	ID                int64   `db:"id" json:"id"`
	SaleDate          string  `db:"sale_date" json:"sale_date"`
	Product           string  `db:"product" json:"product"`
	Quantity          int64   `db:"quantity" json:"quantity"`
	TotalSellingPrice float64 `db:"total_selling_price" json:"total_selling_price"`
	TotalBuyingPrice  float64 `db:"total_buying_price" json:"total_buying_price"`
	Revenue           float64 `db:"revenue" json:"revenue"`
	CustomerID        int64   `db:"customer_id" json:"customer_id"`
}
