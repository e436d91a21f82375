package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// MockFetcher returns controllable fixed data for tests.
type MockFetcher struct {
	Prices map[string]string
	Err    error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) TickerPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	m.Calls = append(m.Calls, symbol)
	if m.Err != nil {
		return decimal.Zero, m.Err
	}
	p, ok := m.Prices[symbol]
	if !ok {
		return decimal.Zero, errors.New("unknown symbol")
	}
	return decimal.RequireFromString(p), nil
}

func newTestResolver(f PriceFetcher) *Resolver {
	return NewResolver(f, time.Second, zerolog.Nop())
}

func TestResolve_PrimarySymbol(t *testing.T) {
	f := &MockFetcher{Prices: map[string]string{"BTCUSDT": "65000"}}
	q, err := newTestResolver(f).Resolve(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if q.Symbol != "BTCUSDT" {
		t.Errorf("expected BTCUSDT, got %s", q.Symbol)
	}
	if !q.Price.Equal(decimal.NewFromInt(65000)) {
		t.Errorf("expected 65000, got %s", q.Price)
	}
	if len(f.Calls) != 1 {
		t.Errorf("expected 1 call, got %v", f.Calls)
	}
}

func TestResolve_AlternateSymbol(t *testing.T) {
	// rebased low-denomination asset: PEPEUSDT unknown, 1000PEPEUSDT listed
	f := &MockFetcher{Prices: map[string]string{"1000PEPEUSDT": "0.0123"}}
	q, err := newTestResolver(f).Resolve(context.Background(), "PEPE")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if q.Symbol != "1000PEPEUSDT" {
		t.Errorf("expected 1000PEPEUSDT, got %s", q.Symbol)
	}
	want := []string{"PEPEUSDT", "1000PEPEUSDT"}
	if len(f.Calls) != 2 || f.Calls[0] != want[0] || f.Calls[1] != want[1] {
		t.Errorf("expected calls %v, got %v", want, f.Calls)
	}
}

func TestResolve_BothCandidatesFail(t *testing.T) {
	f := &MockFetcher{Err: errors.New("connection refused")}
	_, err := newTestResolver(f).Resolve(context.Background(), "XYZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.Calls) != 2 {
		t.Errorf("expected exactly one alternate retry, got calls %v", f.Calls)
	}
}

func TestResolve_NonPositivePriceDiscarded(t *testing.T) {
	f := &MockFetcher{Prices: map[string]string{"XYZUSDT": "0"}}
	_, err := newTestResolver(f).Resolve(context.Background(), "XYZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for zero price, got %v", err)
	}
}
