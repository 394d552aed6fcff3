package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/irsalhamdi/e-commerce-cart/api/weberr"
	"github.com/irsalhamdi/e-commerce-cart/core/claims"
)

func newTokens(t *testing.T) *Tokens {
	t.Helper()
	tk, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return tk
}

func TestNewTokensRejectsBadConfig(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatal("expected an empty secret to be rejected")
	}
	if _, err := NewTokens("s", 0); err == nil {
		t.Fatal("expected a zero timeout to be rejected")
	}
}

func TestIssueVerify(t *testing.T) {
	tk := newTokens(t)

	tok, err := tk.Issue("5b7e0c2e-3b4f-4b5c-9b1d-0c8f2a6e7d10")
	if err != nil {
		t.Fatal(err)
	}

	got, err := tk.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if got != "5b7e0c2e-3b4f-4b5c-9b1d-0c8f2a6e7d10" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestVerifyRejects(t *testing.T) {
	tk := newTokens(t)

	other, err := NewTokens("another-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	forged, err := other.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}

	expiredIssuer := newTokens(t)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1", Issuer: issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	for name, tok := range map[string]string{
		"garbage": "not-a-token",
		"forged":  forged,
		"expired": expired,
		"none":    none,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := tk.Verify(tok); err == nil {
				t.Fatal("expected verification to fail")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tk := newTokens(t)
	tok, err := tk.Issue("u1")
	if err != nil {
		t.Fatal(err)
	}

	var seen string
	h := Authenticate(tk)(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c, err := claims.Get(ctx)
		if err != nil {
			return err
		}
		seen = c.UserID
		return nil
	})

	r := httptest.NewRequest(http.MethodGet, "/users/is-verify", nil)
	r.Header.Set(TokenHeader, tok)
	if err := h(r.Context(), httptest.NewRecorder(), r); err != nil {
		t.Fatal(err)
	}
	if seen != "u1" {
		t.Fatalf("expected claims for u1, got %q", seen)
	}

	for _, header := range []string{"", "bogus"} {
		r := httptest.NewRequest(http.MethodGet, "/users/is-verify", nil)
		if header != "" {
			r.Header.Set(TokenHeader, header)
		}
		err := h(r.Context(), httptest.NewRecorder(), r)
		body, status, ok := weberr.Response(err)
		if !ok || status != http.StatusForbidden || body != weberr.MsgNotAuthorized {
			t.Fatalf("header %q: expected 403 Not authorized, got %v %d %v", header, body, status, ok)
		}
	}
}
