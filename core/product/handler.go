package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
	"github.com/irsalhamdi/e-commerce-cart/api/weberr"
	"github.com/irsalhamdi/e-commerce-cart/core/stock"
	"github.com/jmoiron/sqlx"
)

const (
	MsgInvalidPage = "Invalid page"
	MsgNotFound    = "Product not found"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		raw := web.Param(r, "offset")
		page, err := strconv.Atoi(raw)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("page[%s]: %w", raw, err), MsgInvalidPage)
		}

		prods, err := NewStore(db).List(ctx, page)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, prods, http.StatusOK)
	}
}

func HandlePages(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		n, err := NewStore(db).Count(ctx)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, Pages(n), http.StatusOK)
	}
}

// HandleItem answers one product with its info and available stock.
// Products without a stock row report zero available.
func HandleItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		d, err := NewStore(db).QueryByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err, MsgNotFound)
			}
			return err
		}

		d.Available, err = stock.NewStore(db).Available(ctx, id)
		if err != nil && !errors.Is(err, stock.ErrNotFound) {
			return err
		}

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}
