package domain

// Customer is an entry in the customer list. Orders counts the sales
// attributed to the customer and only ever grows.
type Customer struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Orders   int64  `db:"orders" json:"orders"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
