package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/irsalhamdi/e-commerce-cart/database"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrCartTaken      = errors.New("cart already assigned to a user")
)

type Store struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) Store {
	return Store{db: db}
}

func (s Store) Create(ctx context.Context, u User) error {
	const q = `
	INSERT INTO users (id, name, email, password, cart)
	VALUES (:id, :name, :email, :password, :cart)`

	if _, err := sqlx.NamedExecContext(ctx, s.db, q, u); err != nil {
		if database.IsUniqueViolation(err) {
			if strings.Contains(database.Constraint(err), "cart") {
				return ErrCartTaken
			}
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s Store) QueryByEmail(ctx context.Context, email string) (User, error) {
	const q = `SELECT id, name, email, password, cart FROM users WHERE email = $1`

	var u User
	if err := sqlx.GetContext(ctx, s.db, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user by email: %w", err)
	}
	return u, nil
}

func (s Store) QueryByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT id, name, email, password, cart FROM users WHERE id = $1`

	var u User
	if err := sqlx.GetContext(ctx, s.db, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("selecting user[%s]: %w", id, err)
	}
	return u, nil
}
