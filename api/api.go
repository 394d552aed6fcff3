package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/irsalhamdi/e-commerce-cart/api/middleware"
	"github.com/irsalhamdi/e-commerce-cart/api/web"
	"github.com/irsalhamdi/e-commerce-cart/core/auth"
	"github.com/irsalhamdi/e-commerce-cart/core/cart"
	"github.com/irsalhamdi/e-commerce-cart/core/product"
	"github.com/irsalhamdi/e-commerce-cart/core/user"
	"github.com/irsalhamdi/e-commerce-cart/rate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Tokens     *auth.Tokens
	// Limiter throttles the credential routes. Nil disables throttling.
	Limiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Tokens)
	classify := cart.Classifier()

	var throttle []web.Middleware
	if cfg.Limiter != nil {
		throttle = append(throttle, middleware.RateLimit(cfg.Limiter))
	}

	a.Handle(http.MethodPost, "/cart/getcart", cart.HandleGetCart(cfg.DB), classify)
	a.Handle(http.MethodPost, "/cart/add", cart.HandleAdd(cfg.DB), classify)
	a.Handle(http.MethodPut, "/cart/sub", cart.HandleSub(cfg.DB), classify)
	a.Handle(http.MethodDelete, "/cart/item", cart.HandleDeleteItem(cfg.DB), classify)

	a.Handle(http.MethodPost, "/users/register", user.HandleRegister(cfg.DB, cfg.Tokens), throttle...)
	a.Handle(http.MethodPost, "/users/login", user.HandleLogin(cfg.DB, cfg.Tokens), append(throttle, classify)...)
	a.Handle(http.MethodGet, "/users/is-verify", user.HandleIsVerify(), authen)
	a.Handle(http.MethodGet, "/users/dashboard", user.HandleDashboard(cfg.DB), authen)

	a.Handle(http.MethodGet, "/products/show/{offset}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/products/pages", product.HandlePages(cfg.DB))
	a.Handle(http.MethodGet, "/products/item/{id}", product.HandleItem(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
