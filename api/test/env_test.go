package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/irsalhamdi/e-commerce-cart/api"
	"github.com/irsalhamdi/e-commerce-cart/core/auth"
	"github.com/irsalhamdi/e-commerce-cart/database/dbtest"
	"github.com/irsalhamdi/e-commerce-cart/rate"
	"github.com/sirupsen/logrus"
)

var uuidV4 = regexp.MustCompile(`(?i)^[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`)

type TestEnv struct {
	*httptest.Server
	DB *dbtest.DB
}

// NewTestEnv serves the full API over a throwaway database. The limiter is
// optional; tests that don't exercise throttling pass nil.
func NewTestEnv(t *testing.T, name string, lim *rate.Limiter) *TestEnv {
	t.Helper()

	db := dbtest.New(t, name)

	tokens, err := auth.NewTokens("integration-secret", time.Hour)
	if err != nil {
		t.Fatalf("building tokens: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(api.APIMux(api.APIConfig{
		Log:     log,
		DB:      db.DB,
		Tokens:  tokens,
		Limiter: lim,
	}))
	t.Cleanup(srv.Close)

	return &TestEnv{Server: srv, DB: db}
}

// request describes one call against the test server.
type request struct {
	method string
	path   string
	header map[string]string
	body   any
}

// do runs req, checks the status code and decodes the body into out when
// out is not nil.
func (e *TestEnv) do(t *testing.T, req request, status int, out any) {
	t.Helper()

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(req.method, e.URL+req.path, body)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}

	w, err := e.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	raw, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatal(err)
	}

	if w.StatusCode != status {
		t.Fatalf("%s %s: expected status %d, got %s: %s", req.method, req.path, status, w.Status, raw)
	}

	if out == nil {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("%s %s: cannot unmarshal %s: %v", req.method, req.path, raw, err)
	}
}

// expectError runs req and checks both status and the JSON string body.
func (e *TestEnv) expectError(t *testing.T, req request, status int, msg string) {
	t.Helper()

	var got string
	e.do(t, req, status, &got)
	if got != msg {
		t.Fatalf("%s %s: expected message %q, got %q", req.method, req.path, msg, got)
	}
}

// seedProducts inserts n products named P000, P001... each with stock.
func (e *TestEnv) seedProducts(t *testing.T, n int) []string {
	t.Helper()

	ctx := context.Background()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("P%03d", i)
		if _, err := e.DB.ExecContext(ctx,
			`INSERT INTO prods (id, name, brand, image, price) VALUES ($1, $2, 'brand', 'image.png', 19.90)`,
			id, "product "+id); err != nil {
			t.Fatal(err)
		}
		if _, err := e.DB.ExecContext(ctx,
			`INSERT INTO quantity (prod_id, available) VALUES ($1, $2)`, id, 10+i); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	return ids
}
