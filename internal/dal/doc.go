// Package dal is the data access layer for the sample schemas: the
// ClassicModels customers/orders tables and a generic users table.
//
// Every function is a direct, uncomposed mapping of one SQL statement to one
// typed call. The caller supplies the handle (or transaction) through the
// mydal.Querier interface; the package holds no connection state. Statement
// failures wrap mydal.ErrQueryFailed with the driver error unchanged in the
// chain; lookups that match no rows return mydal.ErrNotFound.
package dal
