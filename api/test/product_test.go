package test

import (
	"net/http"
	"testing"

	"github.com/irsalhamdi/e-commerce-cart/core/product"
	"github.com/shopspring/decimal"
)

func TestProducts(t *testing.T) {
	env := NewTestEnv(t, "product_test", nil)
	env.seedProducts(t, 25)

	var pages int
	env.do(t, request{http.MethodGet, "/products/pages", nil, nil}, http.StatusOK, &pages)
	if pages != 3 {
		t.Fatalf("expected 3 pages, got %d", pages)
	}

	tests := []struct {
		page  string
		size  int
		first string
	}{
		{page: "0", size: 12, first: "P000"},
		{page: "1", size: 12, first: "P000"},
		{page: "2", size: 12, first: "P012"},
		{page: "3", size: 1, first: "P024"},
	}
	for _, tt := range tests {
		var got []product.Product
		env.do(t, request{http.MethodGet, "/products/show/" + tt.page, nil, nil}, http.StatusOK, &got)
		if len(got) != tt.size || got[0].ID != tt.first {
			t.Fatalf("page %s: expected %d products from %s, got %+v", tt.page, tt.size, tt.first, got)
		}
	}

	var past []product.Product
	env.do(t, request{http.MethodGet, "/products/show/9", nil, nil}, http.StatusOK, &past)
	if len(past) != 0 {
		t.Fatalf("expected an empty page, got %+v", past)
	}

	env.expectError(t, request{http.MethodGet, "/products/show/abc", nil, nil},
		http.StatusBadRequest, product.MsgInvalidPage)

	var d product.Detail
	env.do(t, request{http.MethodGet, "/products/item/P003", nil, nil}, http.StatusOK, &d)
	if d.ID != "P003" || d.Available != 13 || !d.Price.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("unexpected detail: %+v", d)
	}

	env.expectError(t, request{http.MethodGet, "/products/item/NOPE", nil, nil},
		http.StatusNotFound, product.MsgNotFound)
}
