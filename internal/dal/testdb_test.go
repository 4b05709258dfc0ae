package dal_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openTestDB returns an in-memory database with the sample schemas created.
// The DAL statements are plain parameterized ANSI SQL, so they run unchanged
// against SQLite in tests and MySQL in production.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection so every statement sees the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE customers (
			customerNumber INTEGER PRIMARY KEY,
			customerName TEXT NOT NULL,
			contactLastName TEXT NOT NULL,
			contactFirstName TEXT NOT NULL,
			phone TEXT NOT NULL,
			addressLine1 TEXT NOT NULL,
			addressLine2 TEXT,
			city TEXT NOT NULL,
			state TEXT,
			postalCode TEXT,
			country TEXT NOT NULL,
			salesRepEmployeeNumber INTEGER,
			creditLimit REAL
		)`,
		`CREATE TABLE orders (
			orderNumber INTEGER PRIMARY KEY,
			orderDate TIMESTAMP NOT NULL,
			requiredDate TIMESTAMP NOT NULL,
			shippedDate TIMESTAMP,
			status TEXT NOT NULL,
			comments TEXT,
			customerNumber INTEGER NOT NULL
		)`,
		`CREATE TABLE products (
			productCode TEXT PRIMARY KEY,
			productName TEXT NOT NULL
		)`,
		`CREATE TABLE orderdetails (
			orderNumber INTEGER NOT NULL,
			productCode TEXT NOT NULL,
			quantityOrdered INTEGER NOT NULL,
			priceEach REAL NOT NULL,
			orderLineNumber INTEGER NOT NULL,
			PRIMARY KEY (orderNumber, orderLineNumber)
		)`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			createdAt TIMESTAMP NOT NULL
		)`,
	}

	ctx := context.Background()
	for _, stmt := range schema {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	return db
}
