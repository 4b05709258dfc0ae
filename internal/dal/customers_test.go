package dal_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydal-project/mydal/internal/dal"
	"github.com/mydal-project/mydal/pkg/mydal"
)

func seedCustomer(number int, name, city, country string, rep int64) dal.Customer {
	c := dal.Customer{
		CustomerNumber:   number,
		CustomerName:     name,
		ContactLastName:  "Doe",
		ContactFirstName: "Jane",
		Phone:            "555-0100",
		AddressLine1:     "1 Main St",
		City:             city,
		Country:          country,
		CreditLimit:      sql.NullFloat64{Float64: 50000, Valid: true},
	}
	if rep > 0 {
		c.SalesRepEmployeeNumber = sql.NullInt64{Int64: rep, Valid: true}
	}
	return c
}

func TestInsertAndGetCustomer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := seedCustomer(103, "Atelier graphique", "Nantes", "France", 1370)
	want.AddressLine2 = sql.NullString{String: "Suite 2", Valid: true}
	want.State = sql.NullString{}

	require.NoError(t, dal.InsertCustomer(ctx, db, want))

	got, err := dal.GetCustomer(ctx, db, 103)
	require.NoError(t, err)

	assert.Equal(t, want.CustomerNumber, got.CustomerNumber)
	assert.Equal(t, want.CustomerName, got.CustomerName)
	assert.Equal(t, want.AddressLine2, got.AddressLine2)
	assert.False(t, got.State.Valid)
	assert.Equal(t, int64(1370), got.SalesRepEmployeeNumber.Int64)
	assert.InDelta(t, 50000, got.CreditLimit.Float64, 0.01)
}

func TestGetCustomer_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := dal.GetCustomer(context.Background(), db, 999)
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestListCustomers_OrderedAndLimited(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(112, "Signal Gift Stores", "Las Vegas", "USA", 0)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(114, "Australian Collectors", "Melbourne", "Australia", 0)))

	customers, err := dal.ListCustomers(ctx, db, 100)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	// Ordered by customerName
	assert.Equal(t, "Atelier graphique", customers[0].CustomerName)
	assert.Equal(t, "Australian Collectors", customers[1].CustomerName)
	assert.Equal(t, "Signal Gift Stores", customers[2].CustomerName)

	limited, err := dal.ListCustomers(ctx, db, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestCustomersByCountry(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(112, "Signal Gift Stores", "Las Vegas", "USA", 0)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(124, "Mini Gifts Distributors", "San Rafael", "USA", 0)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0)))

	usa, err := dal.CustomersByCountry(ctx, db, "USA")
	require.NoError(t, err)
	require.Len(t, usa, 2)
	for _, c := range usa {
		assert.Equal(t, "USA", c.Country)
	}

	none, err := dal.CustomersByCountry(ctx, db, "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCustomersBySalesRep(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(112, "Signal Gift Stores", "Las Vegas", "USA", 1166)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(124, "Mini Gifts Distributors", "San Rafael", "USA", 1165)))
	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(129, "Mini Wheels Co.", "San Francisco", "USA", 1165)))

	reps, err := dal.CustomersBySalesRep(ctx, db, 1165)
	require.NoError(t, err)
	assert.Len(t, reps, 2)
}

func TestUpdateCustomerCredit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0)))

	require.NoError(t, dal.UpdateCustomerCredit(ctx, db, 103, 75000))

	got, err := dal.GetCustomer(ctx, db, 103)
	require.NoError(t, err)
	assert.InDelta(t, 75000, got.CreditLimit.Float64, 0.01)

	err = dal.UpdateCustomerCredit(ctx, db, 999, 75000)
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0)))

	require.NoError(t, dal.DeleteCustomer(ctx, db, 103))

	_, err := dal.GetCustomer(ctx, db, 103)
	assert.ErrorIs(t, err, mydal.ErrNotFound)

	// Deleting again reports not found, not success
	err = dal.DeleteCustomer(ctx, db, 103)
	assert.ErrorIs(t, err, mydal.ErrNotFound)
}

func TestInsertCustomer_DuplicateIsQueryError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0)))

	err := dal.InsertCustomer(ctx, db, seedCustomer(103, "Atelier graphique", "Nantes", "France", 0))
	assert.ErrorIs(t, err, mydal.ErrQueryFailed)
}
