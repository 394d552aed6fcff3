package cart

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/e-commerce-cart/database"
	"github.com/jmoiron/sqlx"
)

// MergeResult describes what a merge moved.
type MergeResult struct {
	Moved   int   `json:"moved"`
	Removed int64 `json:"removed"`
}

// Merge moves every line of the temporary cart tempID into the permanent
// cart permID, summing quantities of products present in both, and then
// deletes the temporary cart. It runs in one transaction, so a failure
// leaves both carts as they were and the call can be retried.
// An empty or unknown temporary cart is a successful no-op.
func Merge(ctx context.Context, db *sqlx.DB, tempID string, permID string) (MergeResult, error) {
	var res MergeResult

	err := database.Transaction(ctx, db, func(tx sqlx.ExtContext) error {
		var err error
		res, err = MergeTx(ctx, tx, tempID, permID)
		return err
	})
	if err != nil {
		return MergeResult{}, fmt.Errorf("merging temporary cart[%s] into cart[%s]: %w", tempID, permID, err)
	}
	return res, nil
}

// MergeTx is Merge on a caller owned transaction.
func MergeTx(ctx context.Context, tx sqlx.ExtContext, tempID string, permID string) (MergeResult, error) {
	temp := NewTemporary(tx)
	perm := NewPermanent(tx)

	items, err := temp.ListItems(ctx, tempID)
	if err != nil {
		return MergeResult{}, err
	}

	var res MergeResult
	for _, it := range items {
		if _, err := perm.Upsert(ctx, permID, it.ProductID, it.Quantity); err != nil {
			return MergeResult{}, fmt.Errorf("moving product[%s]: %w", it.ProductID, err)
		}
		res.Moved++
	}

	if res.Removed, err = temp.DeleteCart(ctx, tempID); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

// Adopt turns the temporary cart tempID into the permanent cart of the same
// id: its rows are copied over and the temporary cart is deleted. Callers
// run it inside the transaction that assigns tempID to the new user.
func Adopt(ctx context.Context, tx sqlx.ExtContext, tempID string) (MergeResult, error) {
	n, err := NewPermanent(tx).AdoptFrom(ctx, tempID)
	if err != nil {
		return MergeResult{}, err
	}

	removed, err := NewTemporary(tx).DeleteCart(ctx, tempID)
	if err != nil {
		return MergeResult{}, err
	}

	return MergeResult{Moved: int(n), Removed: removed}, nil
}
