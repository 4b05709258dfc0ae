package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// Customer is one row of the ClassicModels customers table.
type Customer struct {
	CustomerNumber         int
	CustomerName           string
	ContactLastName        string
	ContactFirstName       string
	Phone                  string
	AddressLine1           string
	AddressLine2           sql.NullString
	City                   string
	State                  sql.NullString
	PostalCode             sql.NullString
	Country                string
	SalesRepEmployeeNumber sql.NullInt64
	CreditLimit            sql.NullFloat64
}

const customerColumns = `customerNumber, customerName, contactLastName, contactFirstName,
	phone, addressLine1, addressLine2, city, state, postalCode,
	country, salesRepEmployeeNumber, creditLimit`

const (
	queryListCustomers = `SELECT ` + customerColumns + `
		FROM customers
		ORDER BY customerName
		LIMIT ?`

	queryCustomerByNumber = `SELECT ` + customerColumns + `
		FROM customers
		WHERE customerNumber = ?`

	queryCustomersByCountry = `SELECT ` + customerColumns + `
		FROM customers
		WHERE country = ?
		ORDER BY customerName`

	queryCustomersBySalesRep = `SELECT ` + customerColumns + `
		FROM customers
		WHERE salesRepEmployeeNumber = ?
		ORDER BY customerName`

	queryInsertCustomer = `INSERT INTO customers
		(customerNumber, customerName, contactLastName, contactFirstName,
		 phone, addressLine1, addressLine2, city, state, postalCode,
		 country, salesRepEmployeeNumber, creditLimit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryUpdateCustomerCredit = `UPDATE customers SET creditLimit = ? WHERE customerNumber = ?`

	queryDeleteCustomer = `DELETE FROM customers WHERE customerNumber = ?`
)

// ListCustomers returns up to limit customers ordered by name.
func ListCustomers(ctx context.Context, q mydal.Querier, limit int) ([]Customer, error) {
	rows, err := q.QueryContext(ctx, queryListCustomers, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list customers: %w", mydal.ErrQueryFailed, err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// GetCustomer returns the customer with the given number,
// or ErrNotFound when no such customer exists.
func GetCustomer(ctx context.Context, q mydal.Querier, customerNumber int) (Customer, error) {
	var c Customer
	err := scanCustomer(q.QueryRowContext(ctx, queryCustomerByNumber, customerNumber), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, fmt.Errorf("customer %d: %w", customerNumber, mydal.ErrNotFound)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("%w: get customer %d: %w", mydal.ErrQueryFailed, customerNumber, err)
	}
	return c, nil
}

// CustomersByCountry returns customers in the given country ordered by name.
func CustomersByCountry(ctx context.Context, q mydal.Querier, country string) ([]Customer, error) {
	rows, err := q.QueryContext(ctx, queryCustomersByCountry, country)
	if err != nil {
		return nil, fmt.Errorf("%w: customers by country %q: %w", mydal.ErrQueryFailed, country, err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// CustomersBySalesRep returns customers assigned to a sales representative.
func CustomersBySalesRep(ctx context.Context, q mydal.Querier, employeeNumber int) ([]Customer, error) {
	rows, err := q.QueryContext(ctx, queryCustomersBySalesRep, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: customers by sales rep %d: %w", mydal.ErrQueryFailed, employeeNumber, err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

// InsertCustomer inserts a new customer row.
func InsertCustomer(ctx context.Context, q mydal.Querier, c Customer) error {
	_, err := q.ExecContext(ctx, queryInsertCustomer,
		c.CustomerNumber, c.CustomerName, c.ContactLastName, c.ContactFirstName,
		c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State, c.PostalCode,
		c.Country, c.SalesRepEmployeeNumber, c.CreditLimit)
	if err != nil {
		return fmt.Errorf("%w: insert customer %d: %w", mydal.ErrQueryFailed, c.CustomerNumber, err)
	}
	return nil
}

// UpdateCustomerCredit sets the credit limit of an existing customer.
// Returns ErrNotFound when the customer does not exist.
func UpdateCustomerCredit(ctx context.Context, q mydal.Querier, customerNumber int, creditLimit float64) error {
	res, err := q.ExecContext(ctx, queryUpdateCustomerCredit, creditLimit, customerNumber)
	if err != nil {
		return fmt.Errorf("%w: update customer %d: %w", mydal.ErrQueryFailed, customerNumber, err)
	}
	return requireRowAffected(res, fmt.Sprintf("customer %d", customerNumber))
}

// DeleteCustomer removes a customer row.
// Returns ErrNotFound when the customer does not exist.
func DeleteCustomer(ctx context.Context, q mydal.Querier, customerNumber int) error {
	res, err := q.ExecContext(ctx, queryDeleteCustomer, customerNumber)
	if err != nil {
		return fmt.Errorf("%w: delete customer %d: %w", mydal.ErrQueryFailed, customerNumber, err)
	}
	return requireRowAffected(res, fmt.Sprintf("customer %d", customerNumber))
}

func collectCustomers(rows *sql.Rows) ([]Customer, error) {
	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("%w: scan customer: %w", mydal.ErrQueryFailed, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate customers: %w", mydal.ErrQueryFailed, err)
	}
	return customers, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner, c *Customer) error {
	return s.Scan(
		&c.CustomerNumber, &c.CustomerName, &c.ContactLastName, &c.ContactFirstName,
		&c.Phone, &c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.PostalCode,
		&c.Country, &c.SalesRepEmployeeNumber, &c.CreditLimit)
}

// requireRowAffected converts a zero-row write into ErrNotFound.
func requireRowAffected(res sql.Result, subject string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for %s: %w", mydal.ErrQueryFailed, subject, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", subject, mydal.ErrNotFound)
	}
	return nil
}
