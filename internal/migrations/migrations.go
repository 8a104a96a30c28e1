package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema for the sales ledger. Statements are
// idempotent, so running at every startup is safe.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            orders INTEGER NOT NULL DEFAULT 0,
            is_active INTEGER NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS inventory (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            product TEXT NOT NULL UNIQUE,
            stock INTEGER NOT NULL CHECK(stock >= 0),
            last_updated TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_date TEXT NOT NULL,
            product TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            total_selling_price REAL NOT NULL,
            total_buying_price REAL NOT NULL,
            revenue REAL NOT NULL,
            customer_id INTEGER NOT NULL,
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
