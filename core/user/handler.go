package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-cart/api/web"
	"github.com/irsalhamdi/e-commerce-cart/api/weberr"
	"github.com/irsalhamdi/e-commerce-cart/core/auth"
	"github.com/irsalhamdi/e-commerce-cart/core/cart"
	"github.com/irsalhamdi/e-commerce-cart/core/claims"
	"github.com/irsalhamdi/e-commerce-cart/database"
	"github.com/irsalhamdi/e-commerce-cart/validate"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgMissingCredentials = "Missing credentials"
	MsgInvalidEmail       = "Invalid Email"
	MsgPasswordsMismatch  = "Passwords must match"
	MsgAlreadyRegistered  = "User already registered"
	MsgBadCredentials     = "Password or email is incorrect"
	MsgInvalidBody        = "Invalid request body"
)

const bcryptCost = 8

func credentialsErr(err error) error {
	if validate.FailedOn(err, "email") {
		return weberr.BadRequest(err, MsgInvalidEmail)
	}
	return weberr.BadRequest(err, MsgMissingCredentials)
}

// create stores u and, when tempID is a well formed temporary cart id, makes
// it the user's permanent cart. A malformed or already owned id gets a fresh
// cart instead, and the temporary cart's lines are merged into it.
func create(ctx context.Context, db *sqlx.DB, u User, tempID string) (User, error) {
	adopt := tempID != "" && validate.CheckID(tempID) == nil

	for {
		u.CartID = validate.GenerateID()
		if adopt {
			u.CartID = tempID
		}

		err := database.Transaction(ctx, db, func(tx sqlx.ExtContext) error {
			if err := NewStore(tx).Create(ctx, u); err != nil {
				return err
			}

			switch {
			case adopt:
				if _, err := cart.Adopt(ctx, tx, tempID); err != nil {
					return fmt.Errorf("adopting temporary cart: %w", err)
				}
			case tempID != "":
				if _, err := cart.MergeTx(ctx, tx, tempID, u.CartID); err != nil {
					return fmt.Errorf("merging temporary cart: %w", err)
				}
			}
			return nil
		})

		if adopt && errors.Is(err, ErrCartTaken) {
			adopt = false
			continue
		}
		if err != nil {
			return User{}, err
		}
		return u, nil
	}
}

// HandleRegister creates an account. A temp_cartNum header turns that
// temporary cart into the new user's permanent cart.
func HandleRegister(db *sqlx.DB, tokens *auth.Tokens) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in UserNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding user: %w", err), MsgInvalidBody)
		}

		if err := validate.Check(in); err != nil {
			return credentialsErr(err)
		}

		if in.Password != in.Password2 {
			return weberr.BadRequest(errors.New("password confirmation differs"), MsgPasswordsMismatch)
		}

		store := NewStore(db)
		if _, err := store.QueryByEmail(ctx, in.Email); err == nil {
			return weberr.BadRequest(ErrDuplicateEmail, MsgAlreadyRegistered)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		u := User{
			ID:       validate.GenerateID(),
			Name:     in.Name,
			Email:    in.Email,
			Password: string(hash),
		}

		u, err = create(ctx, db, u, r.Header.Get(cart.TemporaryHeader))
		if err != nil {
			if errors.Is(err, ErrDuplicateEmail) {
				return weberr.BadRequest(err, MsgAlreadyRegistered)
			}
			return fmt.Errorf("registering user: %w", err)
		}

		tok, err := tokens.Issue(u.ID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, Session{Token: tok, CartNum: u.CartID}, http.StatusCreated)
	}
}

// HandleLogin checks credentials. A request classified as carrying a
// temporary cart has that cart merged into the user's permanent one.
func HandleLogin(db *sqlx.DB, tokens *auth.Tokens) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in UserLogin
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding credentials: %w", err), MsgInvalidBody)
		}

		if err := validate.Check(in); err != nil {
			return weberr.BadRequest(err, MsgMissingCredentials)
		}

		u, err := NewStore(db).QueryByEmail(ctx, in.Email)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.BadRequest(err, MsgBadCredentials)
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
			return weberr.BadRequest(fmt.Errorf("user[%s]: %w", u.ID, err), MsgBadCredentials)
		}

		if ref := cart.FromContext(ctx); ref.Variant == cart.Temporary {
			if _, err := cart.Merge(ctx, db, ref.ID, u.CartID); err != nil {
				return err
			}
		}

		tok, err := tokens.Issue(u.ID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, Session{Token: tok, CartNum: u.CartID}, http.StatusOK)
	}
}

func HandleIsVerify() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, true, http.StatusOK)
	}
}

func HandleDashboard(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(err)
		}

		u, err := NewStore(db).QueryByID(ctx, clm.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotAuthorized(err)
			}
			return err
		}

		return web.Respond(ctx, w, Dashboard{Name: u.Name, Email: u.Email, CartNum: u.CartID}, http.StatusOK)
	}
}
