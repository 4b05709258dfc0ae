// Package testinfra starts throwaway MySQL servers for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MySQLImage    = "mysql:8.0"
	MySQLUser     = "mydal"
	MySQLPassword = "mydal"
	MySQLDatabase = "classicmodels"
)

type MySQLContainer struct {
	*mysql.MySQLContainer
	ConnString string
}

// StartMySQL runs a MySQL server seeded with the sample schema and returns
// it together with a ready-to-use DSN.
func StartMySQL(ctx context.Context) (*MySQLContainer, error) {
	schemaPath, err := writeSampleSchema()
	if err != nil {
		return nil, err
	}

	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase(MySQLDatabase),
		mysql.WithScripts(schemaPath),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "parseTime=true")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MySQLContainer{MySQLContainer: ctr, ConnString: connStr}, nil
}

// writeSampleSchema materializes the table definitions the tests rely on so
// the container can apply them at first boot.
func writeSampleSchema() (string, error) {
	schema := `CREATE TABLE customers (
  customerNumber INT PRIMARY KEY,
  customerName VARCHAR(50) NOT NULL,
  contactLastName VARCHAR(50) NOT NULL,
  contactFirstName VARCHAR(50) NOT NULL,
  phone VARCHAR(50) NOT NULL,
  addressLine1 VARCHAR(50) NOT NULL,
  addressLine2 VARCHAR(50),
  city VARCHAR(50) NOT NULL,
  state VARCHAR(50),
  postalCode VARCHAR(15),
  country VARCHAR(50) NOT NULL,
  salesRepEmployeeNumber INT,
  creditLimit DECIMAL(10,2)
);

CREATE TABLE products (
  productCode VARCHAR(15) PRIMARY KEY,
  productName VARCHAR(70) NOT NULL
);

CREATE TABLE orders (
  orderNumber INT PRIMARY KEY,
  orderDate DATETIME NOT NULL,
  requiredDate DATETIME NOT NULL,
  shippedDate DATETIME,
  status VARCHAR(15) NOT NULL,
  comments TEXT,
  customerNumber INT NOT NULL,
  FOREIGN KEY (customerNumber) REFERENCES customers (customerNumber)
);

CREATE TABLE orderdetails (
  orderNumber INT NOT NULL,
  productCode VARCHAR(15) NOT NULL,
  quantityOrdered INT NOT NULL,
  priceEach DECIMAL(10,2) NOT NULL,
  orderLineNumber SMALLINT NOT NULL,
  PRIMARY KEY (orderNumber, orderLineNumber),
  FOREIGN KEY (orderNumber) REFERENCES orders (orderNumber),
  FOREIGN KEY (productCode) REFERENCES products (productCode)
);

CREATE TABLE users (
  id CHAR(36) PRIMARY KEY,
  name VARCHAR(100) NOT NULL,
  email VARCHAR(255) NOT NULL UNIQUE,
  createdAt DATETIME NOT NULL
);
`

	dir, err := os.MkdirTemp("", "mydal-schema-")
	if err != nil {
		return "", fmt.Errorf("create schema dir: %w", err)
	}

	path := filepath.Join(dir, "schema.sql")
	if err := os.WriteFile(path, []byte(schema), 0644); err != nil {
		return "", fmt.Errorf("write schema.sql: %w", err)
	}
	return path, nil
}
