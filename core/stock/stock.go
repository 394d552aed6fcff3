// Package stock tracks how many units of each product are available.
package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound        = errors.New("no stock tracked for product")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

type Store struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) Store {
	return Store{db: db}
}

func (s Store) Available(ctx context.Context, productID string) (int, error) {
	return s.scalar(ctx, `SELECT available FROM quantity WHERE prod_id = $1`, productID)
}

// Add raises the stock of productID by n and returns the new level.
func (s Store) Add(ctx context.Context, productID string, n int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidQuantity
	}
	return s.scalar(ctx, `UPDATE quantity SET available = available + $2 WHERE prod_id = $1 RETURNING available`, productID, n)
}

// Sub lowers the stock of productID by n and returns the new level. The
// level may go negative, which records a backorder.
func (s Store) Sub(ctx context.Context, productID string, n int) (int, error) {
	if n < 0 {
		return 0, ErrInvalidQuantity
	}
	return s.scalar(ctx, `UPDATE quantity SET available = available - $2 WHERE prod_id = $1 RETURNING available`, productID, n)
}

// Reset sets every tracked product to n units.
func (s Store) Reset(ctx context.Context, n int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE quantity SET available = $1`, n)
	if err != nil {
		return 0, fmt.Errorf("resetting stock: %w", err)
	}
	return res.RowsAffected()
}

func (s Store) scalar(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("stock of product[%v]: %w", args[0], err)
	}
	return n, nil
}
