package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/e-commerce-cart/database"
	"github.com/irsalhamdi/e-commerce-cart/validate"
	"github.com/jmoiron/sqlx"
)

const (
	temporaryTable = "temp_cart"
	permanentTable = "prods_cart"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrItemExists      = errors.New("cart item already exists")
	ErrUnknownProduct  = errors.New("product does not exist")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Store holds the line items of one cart variant. Both variants share the
// same shape and differ only by table and by how lines are enriched.
type Store struct {
	db    sqlx.ExtContext
	table string
	// enrich is the join used by GetEnriched, with the cart table aliased c.
	enrich string
}

// Get returns the rows of a cart ordered by product. An unknown cart yields
// an empty slice.
func (s Store) Get(ctx context.Context, cartID string) ([]Item, error) {
	q := fmt.Sprintf(`
	SELECT user_cart, prod_id, quantity
	FROM %s
	WHERE user_cart = $1
	ORDER BY prod_id`, s.table)

	items := []Item{}
	if err := sqlx.SelectContext(ctx, s.db, &items, q, cartID); err != nil {
		return nil, fmt.Errorf("selecting %s[%s]: %w", s.table, cartID, err)
	}
	return items, nil
}

// GetEnriched returns the lines of a cart joined with the product catalog.
func (s Store) GetEnriched(ctx context.Context, cartID string) ([]Line, error) {
	q := fmt.Sprintf(`
	SELECT p.id, p.image, p.name, p.brand, p.price, c.quantity
	FROM prods p
	%s
	WHERE c.user_cart = $1
	ORDER BY p.id`, s.enrich)

	lines := []Line{}
	if err := sqlx.SelectContext(ctx, s.db, &lines, q, cartID); err != nil {
		return nil, fmt.Errorf("selecting lines of %s[%s]: %w", s.table, cartID, err)
	}
	return lines, nil
}

func (s Store) CheckProduct(ctx context.Context, cartID string, productID string) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_cart = $1 AND prod_id = $2)`, s.table)

	var ok bool
	if err := sqlx.GetContext(ctx, s.db, &ok, q, cartID, productID); err != nil {
		return false, fmt.Errorf("checking product[%s] in %s[%s]: %w", productID, s.table, cartID, err)
	}
	return ok, nil
}

// AddItem inserts a new row and fails with ErrItemExists if the product is
// already in the cart.
func (s Store) AddItem(ctx context.Context, cartID string, productID string, quantity int) (Item, error) {
	if quantity < 0 {
		return Item{}, fmt.Errorf("adding %d of product[%s]: %w", quantity, productID, ErrInvalidQuantity)
	}

	q := fmt.Sprintf(`
	INSERT INTO %s (user_cart, prod_id, quantity)
	VALUES ($1, $2, $3)
	RETURNING user_cart, prod_id, quantity`, s.table)

	return s.row(ctx, q, cartID, productID, quantity)
}

// Upsert inserts the product at quantity, or adds quantity to the existing
// row, in a single statement.
func (s Store) Upsert(ctx context.Context, cartID string, productID string, quantity int) (Item, error) {
	if quantity < 0 {
		return Item{}, fmt.Errorf("adding %d of product[%s]: %w", quantity, productID, ErrInvalidQuantity)
	}

	q := fmt.Sprintf(`
	INSERT INTO %[1]s AS c (user_cart, prod_id, quantity)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_cart, prod_id)
	DO UPDATE SET quantity = c.quantity + EXCLUDED.quantity
	RETURNING user_cart, prod_id, quantity`, s.table)

	return s.row(ctx, q, cartID, productID, quantity)
}

func (s Store) Increment(ctx context.Context, cartID string, productID string, delta int) (Item, error) {
	if delta < 1 {
		return Item{}, fmt.Errorf("incrementing by %d: %w", delta, ErrInvalidQuantity)
	}

	q := fmt.Sprintf(`
	UPDATE %s
	SET quantity = quantity + $3
	WHERE user_cart = $1 AND prod_id = $2
	RETURNING user_cart, prod_id, quantity`, s.table)

	return s.row(ctx, q, cartID, productID, delta)
}

// Decrement lowers the quantity by delta. Quantities never drop below zero:
// a decrement that would do so reports ErrItemNotFound, same as a missing row.
func (s Store) Decrement(ctx context.Context, cartID string, productID string, delta int) (Item, error) {
	if delta < 1 {
		return Item{}, fmt.Errorf("decrementing by %d: %w", delta, ErrInvalidQuantity)
	}

	q := fmt.Sprintf(`
	UPDATE %s
	SET quantity = quantity - $3
	WHERE user_cart = $1 AND prod_id = $2 AND quantity >= $3
	RETURNING user_cart, prod_id, quantity`, s.table)

	return s.row(ctx, q, cartID, productID, delta)
}

func (s Store) DeleteItem(ctx context.Context, cartID string, productID string) (Item, error) {
	q := fmt.Sprintf(`
	DELETE FROM %s
	WHERE user_cart = $1 AND prod_id = $2
	RETURNING user_cart, prod_id, quantity`, s.table)

	return s.row(ctx, q, cartID, productID)
}

// ListItems returns the product/quantity pairs of a cart without touching
// the catalog.
func (s Store) ListItems(ctx context.Context, cartID string) ([]Quantity, error) {
	q := fmt.Sprintf(`SELECT prod_id, quantity FROM %s WHERE user_cart = $1 ORDER BY prod_id`, s.table)

	qs := []Quantity{}
	if err := sqlx.SelectContext(ctx, s.db, &qs, q, cartID); err != nil {
		return nil, fmt.Errorf("listing %s[%s]: %w", s.table, cartID, err)
	}
	return qs, nil
}

// DeleteCart removes every row of a cart and returns how many were removed.
func (s Store) DeleteCart(ctx context.Context, cartID string) (int64, error) {
	q := fmt.Sprintf(`DELETE FROM %s WHERE user_cart = $1`, s.table)

	res, err := s.db.ExecContext(ctx, q, cartID)
	if err != nil {
		return 0, fmt.Errorf("deleting %s[%s]: %w", s.table, cartID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return n, nil
}

func (s Store) row(ctx context.Context, q string, args ...any) (Item, error) {
	var it Item
	err := sqlx.GetContext(ctx, s.db, &it, q, args...)
	switch {
	case err == nil:
		return it, nil
	case errors.Is(err, sql.ErrNoRows):
		return Item{}, ErrItemNotFound
	case database.IsUniqueViolation(err):
		return Item{}, ErrItemExists
	case database.IsForeignKeyViolation(err):
		return Item{}, ErrUnknownProduct
	default:
		return Item{}, fmt.Errorf("writing %s: %w", s.table, err)
	}
}

// Temporary holds anonymous carts keyed by a minted uuid.
type Temporary struct {
	Store
}

func NewTemporary(db sqlx.ExtContext) Temporary {
	return Temporary{Store{
		db:     db,
		table:  temporaryTable,
		enrich: `JOIN temp_cart c ON p.id = c.prod_id`,
	}}
}

// CreateCart mints a new cart id holding one unit of productID.
func (t Temporary) CreateCart(ctx context.Context, productID string) (string, error) {
	id := validate.GenerateID()
	if _, err := t.AddItem(ctx, id, productID, 1); err != nil {
		return "", fmt.Errorf("creating temporary cart: %w", err)
	}
	return id, nil
}

// Permanent holds the carts owned by registered users.
type Permanent struct {
	Store
}

func NewPermanent(db sqlx.ExtContext) Permanent {
	return Permanent{Store{
		db:     db,
		table:  permanentTable,
		enrich: `JOIN prods_cart c ON p.id = c.prod_id JOIN users u ON u.cart = c.user_cart`,
	}}
}

// AdoptFrom copies the rows of the temporary cart cartID into the permanent
// cart of the same id, summing quantities of products already present.
// The temporary rows are left in place.
func (p Permanent) AdoptFrom(ctx context.Context, cartID string) (int64, error) {
	const q = `
	INSERT INTO prods_cart AS c (user_cart, prod_id, quantity)
	SELECT user_cart, prod_id, quantity FROM temp_cart WHERE user_cart = $1
	ON CONFLICT (user_cart, prod_id)
	DO UPDATE SET quantity = c.quantity + EXCLUDED.quantity`

	res, err := p.db.ExecContext(ctx, q, cartID)
	if err != nil {
		return 0, fmt.Errorf("adopting temporary cart[%s]: %w", cartID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting adopted rows: %w", err)
	}
	return n, nil
}
