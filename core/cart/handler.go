package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
	"github.com/irsalhamdi/e-commerce-cart/api/weberr"
	"github.com/jmoiron/sqlx"
)

const (
	MsgNoCart         = "No cart number informed"
	MsgNoProduct      = "No selected product"
	MsgNotPerformed   = "Action could not be performed"
	MsgInvalidBody    = "Invalid request body"
	MsgUnknownProduct = "Product not found"
)

var errNoCart = errors.New("no cart header")

func storeFor(db sqlx.ExtContext, ref Ref) (Store, error) {
	switch ref.Variant {
	case Permanent:
		return NewPermanent(db).Store, nil
	case Temporary:
		return NewTemporary(db).Store, nil
	default:
		return Store{}, weberr.BadRequest(errNoCart, MsgNoCart)
	}
}

func decodeItem(w http.ResponseWriter, r *http.Request) (ItemNew, error) {
	var in ItemNew
	if err := web.Decode(w, r, &in); err != nil {
		return ItemNew{}, weberr.BadRequest(fmt.Errorf("decoding item: %w", err), MsgInvalidBody)
	}
	if in.ProdID == "" {
		return ItemNew{}, weberr.BadRequest(errors.New("prodId missing"), MsgNoProduct)
	}
	return in, nil
}

func writeErr(err error, ref Ref, productID string) error {
	fields := weberr.WithFields(map[string]interface{}{
		"cart":    ref.ID,
		"variant": ref.Variant.String(),
		"product": productID,
	})

	switch {
	case errors.Is(err, ErrItemNotFound):
		return weberr.BadRequest(err, MsgNotPerformed, fields)
	case errors.Is(err, ErrUnknownProduct):
		return weberr.NotFound(err, MsgUnknownProduct, fields)
	default:
		return weberr.Wrap(err, fields)
	}
}

// HandleGetCart answers the enriched lines of the classified cart.
func HandleGetCart(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ref := FromContext(ctx)
		s, err := storeFor(db, ref)
		if err != nil {
			return err
		}

		lines, err := s.GetEnriched(ctx, ref.ID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, lines, http.StatusOK)
	}
}

// HandleAdd adds one unit of a product. Without a cart header a new
// temporary cart is minted and returned with its contents.
func HandleAdd(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		in, err := decodeItem(w, r)
		if err != nil {
			return err
		}

		ref := FromContext(ctx)
		if ref.Variant == None {
			temp := NewTemporary(db)
			id, err := temp.CreateCart(ctx, in.ProdID)
			if err != nil {
				return writeErr(err, ref, in.ProdID)
			}

			items, err := temp.Get(ctx, id)
			if err != nil {
				return err
			}
			return web.Respond(ctx, w, Created{CartNum: id, Cart: items}, http.StatusOK)
		}

		s, err := storeFor(db, ref)
		if err != nil {
			return err
		}

		it, err := s.Upsert(ctx, ref.ID, in.ProdID, 1)
		if err != nil {
			return writeErr(err, ref, in.ProdID)
		}

		return web.Respond(ctx, w, []Item{it}, http.StatusOK)
	}
}

// HandleSub removes one unit of a product.
func HandleSub(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		in, err := decodeItem(w, r)
		if err != nil {
			return err
		}

		ref := FromContext(ctx)
		s, err := storeFor(db, ref)
		if err != nil {
			return err
		}

		it, err := s.Decrement(ctx, ref.ID, in.ProdID, 1)
		if err != nil {
			return writeErr(err, ref, in.ProdID)
		}

		return web.Respond(ctx, w, []Item{it}, http.StatusOK)
	}
}

// HandleDeleteItem drops a product from the cart whatever its quantity.
func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		in, err := decodeItem(w, r)
		if err != nil {
			return err
		}

		ref := FromContext(ctx)
		s, err := storeFor(db, ref)
		if err != nil {
			return err
		}

		it, err := s.DeleteItem(ctx, ref.ID, in.ProdID)
		if err != nil {
			return writeErr(err, ref, in.ProdID)
		}

		return web.Respond(ctx, w, []Item{it}, http.StatusOK)
	}
}
