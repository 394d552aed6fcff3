package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

type Store struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) Store {
	return Store{db: db}
}

// List returns the products of a 1-indexed page.
func (s Store) List(ctx context.Context, page int) ([]Product, error) {
	const q = `
	SELECT id, name, brand, image, price
	FROM prods
	ORDER BY id
	LIMIT $1 OFFSET $2`

	prods := []Product{}
	if err := sqlx.SelectContext(ctx, s.db, &prods, q, PageSize, Offset(page)); err != nil {
		return nil, fmt.Errorf("selecting page %d: %w", page, err)
	}
	return prods, nil
}

func (s Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, `SELECT COUNT(*) FROM prods`); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return n, nil
}

func (s Store) QueryByID(ctx context.Context, id string) (Detail, error) {
	const q = `
	SELECT p.id, p.name, p.brand, p.image, p.price,
		COALESCE(i.description, '') AS description,
		COALESCE(i.material, '') AS material,
		COALESCE(i.color, '') AS color
	FROM prods p
	LEFT JOIN prods_info i ON i.prod_id = p.id
	WHERE p.id = $1`

	var d Detail
	if err := sqlx.GetContext(ctx, s.db, &d, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Detail{}, ErrNotFound
		}
		return Detail{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}
	return d, nil
}
