package cart_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// seedProducts inserts n catalog products and returns their ids in
// ascending order.
func seedProducts(t *testing.T, ctx context.Context, db *sqlx.DB, n int) []string {
	t.Helper()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := strings.ToUpper(gofakeit.LetterN(13))
		_, err := db.ExecContext(ctx,
			`INSERT INTO prods (id, name, brand, image, price) VALUES ($1, $2, $3, $4, $5)`,
			id, gofakeit.ProductName(), gofakeit.Company(), gofakeit.URL(), gofakeit.Price(1, 500),
		)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}

func seedUser(t *testing.T, ctx context.Context, db *sqlx.DB, cartID string) {
	t.Helper()

	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, cart) VALUES ($1, $2, $3, $4, $5)`,
		gofakeit.UUID(), gofakeit.Name(), gofakeit.Email(), "hash", cartID,
	)
	require.NoError(t, err)
}
