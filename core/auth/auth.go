package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
	"github.com/irsalhamdi/e-commerce-cart/api/weberr"
	"github.com/irsalhamdi/e-commerce-cart/core/claims"
)

// TokenHeader carries the bearer token issued at register/login.
const TokenHeader = "token"

// Authenticate rejects requests without a valid token and stores the
// token's user in the context claims.
func Authenticate(tokens *Tokens) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			tok := r.Header.Get(TokenHeader)
			if tok == "" {
				return weberr.NotAuthorized(errors.New("no token informed"))
			}

			userID, err := tokens.Verify(tok)
			if err != nil {
				return weberr.NotAuthorized(fmt.Errorf("verifying token: %w", err))
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: userID})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
