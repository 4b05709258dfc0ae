package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// Order is one row of the ClassicModels orders table.
type Order struct {
	OrderNumber    int
	OrderDate      time.Time
	RequiredDate   time.Time
	ShippedDate    sql.NullTime
	Status         string
	Comments       sql.NullString
	CustomerNumber int
}

// OrderLineItem is one row of orderdetails joined with the product name.
type OrderLineItem struct {
	OrderNumber     int
	ProductCode     string
	ProductName     string
	QuantityOrdered int
	PriceEach       float64
	OrderLineNumber int
}

// StatusInProcess is the status assigned to newly inserted orders.
const StatusInProcess = "In Process"

const orderColumns = `orderNumber, orderDate, requiredDate, shippedDate,
	status, comments, customerNumber`

const (
	queryListOrders = `SELECT ` + orderColumns + `
		FROM orders
		ORDER BY orderDate DESC
		LIMIT ?`

	queryOrderByNumber = `SELECT ` + orderColumns + `
		FROM orders
		WHERE orderNumber = ?`

	queryOrdersByCustomer = `SELECT ` + orderColumns + `
		FROM orders
		WHERE customerNumber = ?
		ORDER BY orderDate DESC`

	queryOrdersByStatus = `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ?
		ORDER BY orderDate DESC`

	queryInsertOrder = `INSERT INTO orders
		(orderNumber, orderDate, requiredDate, customerNumber, status)
		VALUES (?, ?, ?, ?, ?)`

	queryUpdateOrderStatus = `UPDATE orders SET status = ? WHERE orderNumber = ?`

	queryShipOrder = `UPDATE orders SET status = ?, shippedDate = ? WHERE orderNumber = ?`

	queryOrderLineItems = `SELECT od.orderNumber, od.productCode, p.productName,
			od.quantityOrdered, od.priceEach, od.orderLineNumber
		FROM orderdetails od
		JOIN products p ON od.productCode = p.productCode
		WHERE od.orderNumber = ?
		ORDER BY od.orderLineNumber`
)

// ListOrders returns up to limit orders, most recent first.
func ListOrders(ctx context.Context, q mydal.Querier, limit int) ([]Order, error) {
	rows, err := q.QueryContext(ctx, queryListOrders, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", mydal.ErrQueryFailed, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// GetOrder returns the order with the given number,
// or ErrNotFound when no such order exists.
func GetOrder(ctx context.Context, q mydal.Querier, orderNumber int) (Order, error) {
	var o Order
	err := scanOrder(q.QueryRowContext(ctx, queryOrderByNumber, orderNumber), &o)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, fmt.Errorf("order %d: %w", orderNumber, mydal.ErrNotFound)
	}
	if err != nil {
		return Order{}, fmt.Errorf("%w: get order %d: %w", mydal.ErrQueryFailed, orderNumber, err)
	}
	return o, nil
}

// OrdersByCustomer returns all orders of one customer, most recent first.
func OrdersByCustomer(ctx context.Context, q mydal.Querier, customerNumber int) ([]Order, error) {
	rows, err := q.QueryContext(ctx, queryOrdersByCustomer, customerNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: orders by customer %d: %w", mydal.ErrQueryFailed, customerNumber, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// OrdersByStatus returns orders with the given status
// (Shipped, Resolved, Cancelled, On Hold, Disputed, In Process).
func OrdersByStatus(ctx context.Context, q mydal.Querier, status string) ([]Order, error) {
	rows, err := q.QueryContext(ctx, queryOrdersByStatus, status)
	if err != nil {
		return nil, fmt.Errorf("%w: orders by status %q: %w", mydal.ErrQueryFailed, status, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// InsertOrder inserts a new order. An empty status defaults to "In Process".
func InsertOrder(ctx context.Context, q mydal.Querier, o Order) error {
	status := o.Status
	if status == "" {
		status = StatusInProcess
	}

	_, err := q.ExecContext(ctx, queryInsertOrder,
		o.OrderNumber, o.OrderDate, o.RequiredDate, o.CustomerNumber, status)
	if err != nil {
		return fmt.Errorf("%w: insert order %d: %w", mydal.ErrQueryFailed, o.OrderNumber, err)
	}
	return nil
}

// UpdateOrderStatus sets the status of an existing order. When shippedDate
// is non-nil the shipped date is recorded as well.
// Returns ErrNotFound when the order does not exist.
func UpdateOrderStatus(ctx context.Context, q mydal.Querier, orderNumber int, status string, shippedDate *time.Time) error {
	var (
		res sql.Result
		err error
	)
	if shippedDate != nil {
		res, err = q.ExecContext(ctx, queryShipOrder, status, *shippedDate, orderNumber)
	} else {
		res, err = q.ExecContext(ctx, queryUpdateOrderStatus, status, orderNumber)
	}
	if err != nil {
		return fmt.Errorf("%w: update order %d: %w", mydal.ErrQueryFailed, orderNumber, err)
	}
	return requireRowAffected(res, fmt.Sprintf("order %d", orderNumber))
}

// OrderLineItems returns the line items of one order joined with product
// names, in line-number order.
func OrderLineItems(ctx context.Context, q mydal.Querier, orderNumber int) ([]OrderLineItem, error) {
	rows, err := q.QueryContext(ctx, queryOrderLineItems, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: line items of order %d: %w", mydal.ErrQueryFailed, orderNumber, err)
	}
	defer rows.Close()

	var items []OrderLineItem
	for rows.Next() {
		var it OrderLineItem
		if err := rows.Scan(&it.OrderNumber, &it.ProductCode, &it.ProductName,
			&it.QuantityOrdered, &it.PriceEach, &it.OrderLineNumber); err != nil {
			return nil, fmt.Errorf("%w: scan line item: %w", mydal.ErrQueryFailed, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate line items: %w", mydal.ErrQueryFailed, err)
	}
	return items, nil
}

func collectOrders(rows *sql.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("%w: scan order: %w", mydal.ErrQueryFailed, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate orders: %w", mydal.ErrQueryFailed, err)
	}
	return orders, nil
}

func scanOrder(s scanner, o *Order) error {
	return s.Scan(
		&o.OrderNumber, &o.OrderDate, &o.RequiredDate, &o.ShippedDate,
		&o.Status, &o.Comments, &o.CustomerNumber)
}
