package domain

// InventoryRecord tracks the current stock level for one product.
// The product name acts as the natural key.
type InventoryRecord struct {
	ID          int64  `db:"id" json:"id"`
	Product     string `db:"product" json:"product"`
	Stock       int64  `db:"stock" json:"stock"`
	LastUpdated string `db:"last_updated" json:"last_updated"`
}
