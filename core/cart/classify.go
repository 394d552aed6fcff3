package cart

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
)

const (
	PermanentHeader = "cartNum"
	TemporaryHeader = "temp_cartNum"
)

type Variant int

const (
	None Variant = iota
	Temporary
	Permanent
)

func (v Variant) String() string {
	switch v {
	case Temporary:
		return "Temporary"
	case Permanent:
		return "Permanent"
	default:
		return "None"
	}
}

// Ref is the cart a request applies to. ID is empty when Variant is None.
type Ref struct {
	ID      string
	Variant Variant
}

// Classify resolves the cart headers of a request. The permanent header
// takes precedence when both are present. Contents are not validated.
func Classify(h http.Header) Ref {
	if id := h.Get(PermanentHeader); id != "" {
		return Ref{ID: id, Variant: Permanent}
	}
	if id := h.Get(TemporaryHeader); id != "" {
		return Ref{ID: id, Variant: Temporary}
	}
	return Ref{Variant: None}
}

type ctxKey int

const refKey ctxKey = 1

func WithRef(ctx context.Context, ref Ref) context.Context {
	return context.WithValue(ctx, refKey, ref)
}

// FromContext returns the classified cart, or a None ref when the request
// did not pass through Classifier.
func FromContext(ctx context.Context) Ref {
	ref, ok := ctx.Value(refKey).(Ref)
	if !ok {
		return Ref{Variant: None}
	}
	return ref
}

// Classifier attaches the request's cart classification to its context.
func Classifier() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			return handler(WithRef(ctx, Classify(r.Header)), w, r)
		}
		return h
	}
	return m
}
