package rate

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLimiter(t *testing.T) {
	burst := 1

	interval := 10 * time.Millisecond
	lim := Every(interval)
	r := NewLimiter(burst, 100, lim)
	defer r.Close()

	tooshort := 1 * time.Millisecond

	client := "10.0.0.1"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := r.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterWithBurst(t *testing.T) {
	client := "10.0.0.1"
	burst := 10

	interval := 100 * time.Millisecond
	lim := Every(interval)

	tooshort := 10 * time.Millisecond

	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	rr := NewLimiter(burst, 100, lim)
	defer rr.Close()
	for i, exp := range expected {
		if got := rr.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterClientsAreIndependent(t *testing.T) {
	r := NewLimiter(1, 100, Every(time.Hour))
	defer r.Close()

	if !r.Check("a") {
		t.Fatal("first request of client a should pass")
	}
	if r.Check("a") {
		t.Fatal("second request of client a should be limited")
	}
	if !r.Check("b") {
		t.Fatal("client b must not share client a's bucket")
	}
}

func TestLimiterSweepsExpiredClients(t *testing.T) {
	r := newLimiter(1, 0, Every(time.Hour), 5*time.Millisecond)
	defer r.Close()

	r.Check("a")
	r.Check("b")

	deadline := time.Now().Add(time.Second)
	for r.size() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected idle clients to be swept, %d left", r.size())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLimiterCloseIsIdempotent(t *testing.T) {
	r := NewLimiter(1, 1, Every(time.Second))
	r.Close()
	r.Close()
}
