package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
)

// Headers the browser client is allowed to send, including the cart and
// token headers the API is driven by.
var allowedHeaders = []string{
	"Accept",
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"token",
	"cartNum",
	"temp_cartNum",
	RequestIDHeader,
}

func Cors(origin string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, PATCH, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
			w.Header().Set("Access-Control-Max-Age", "86400")

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
