package dal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mydal-project/mydal/pkg/mydal"
)

// User is one row of the generic users sample table.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

const (
	queryInsertUser = `INSERT INTO users (id, name, email, createdAt) VALUES (?, ?, ?, ?)`

	queryUserByID = `SELECT id, name, email, createdAt FROM users WHERE id = ?`

	queryUserByEmail = `SELECT id, name, email, createdAt FROM users WHERE email = ?`

	queryListUsers = `SELECT id, name, email, createdAt FROM users ORDER BY createdAt, id`

	queryUpdateUserEmail = `UPDATE users SET email = ? WHERE id = ?`

	queryDeleteUser = `DELETE FROM users WHERE id = ?`
)

// CreateUser inserts a new user with a generated UUID and returns the row.
func CreateUser(ctx context.Context, q mydal.Querier, name, email string) (User, error) {
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := q.ExecContext(ctx, queryInsertUser, u.ID, u.Name, u.Email, u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("%w: create user %q: %w", mydal.ErrQueryFailed, email, err)
	}
	return u, nil
}

// GetUser returns the user with the given id, or ErrNotFound.
func GetUser(ctx context.Context, q mydal.Querier, id string) (User, error) {
	var u User
	err := q.QueryRowContext(ctx, queryUserByID, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %s: %w", id, mydal.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("%w: get user %s: %w", mydal.ErrQueryFailed, id, err)
	}
	return u, nil
}

// GetUserByEmail returns the user with the given email, or ErrNotFound.
func GetUserByEmail(ctx context.Context, q mydal.Querier, email string) (User, error) {
	var u User
	err := q.QueryRowContext(ctx, queryUserByEmail, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %q: %w", email, mydal.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("%w: get user by email %q: %w", mydal.ErrQueryFailed, email, err)
	}
	return u, nil
}

// ListUsers returns all users, oldest first.
func ListUsers(ctx context.Context, q mydal.Querier) ([]User, error) {
	rows, err := q.QueryContext(ctx, queryListUsers)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", mydal.ErrQueryFailed, err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", mydal.ErrQueryFailed, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate users: %w", mydal.ErrQueryFailed, err)
	}
	return users, nil
}

// UpdateUserEmail changes a user's email address.
// Returns ErrNotFound when the user does not exist.
func UpdateUserEmail(ctx context.Context, q mydal.Querier, id, email string) error {
	res, err := q.ExecContext(ctx, queryUpdateUserEmail, email, id)
	if err != nil {
		return fmt.Errorf("%w: update user %s: %w", mydal.ErrQueryFailed, id, err)
	}
	return requireRowAffected(res, fmt.Sprintf("user %s", id))
}

// DeleteUser removes a user row.
// Returns ErrNotFound when the user does not exist.
func DeleteUser(ctx context.Context, q mydal.Querier, id string) error {
	res, err := q.ExecContext(ctx, queryDeleteUser, id)
	if err != nil {
		return fmt.Errorf("%w: delete user %s: %w", mydal.ErrQueryFailed, id, err)
	}
	return requireRowAffected(res, fmt.Sprintf("user %s", id))
}
