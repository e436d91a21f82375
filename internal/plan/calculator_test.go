package plan

import (
	"testing"

	"github.com/shopspring/decimal"

	"SignalRelay/internal/model"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(DefaultSettings())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

func checkShape(t *testing.T, p *model.TradePlan) {
	t.Helper()
	if len(p.TakeProfits) != 7 {
		t.Fatalf("expected 7 take-profits, got %d", len(p.TakeProfits))
	}
	prev := p.Entry
	for i, tp := range p.TakeProfits {
		favorable := tp.GreaterThan(prev)
		if p.Direction == model.Short {
			favorable = tp.LessThan(prev)
		}
		if !favorable {
			t.Errorf("TP%d (%s) does not move away from entry %s (%s)", i+1, tp, p.Entry, p.Direction)
		}
		prev = tp
	}
	adverse := p.StopLoss.LessThan(p.Entry)
	if p.Direction == model.Short {
		adverse = p.StopLoss.GreaterThan(p.Entry)
	}
	if !adverse {
		t.Errorf("stop-loss %s is not on the adverse side of entry %s (%s)", p.StopLoss, p.Entry, p.Direction)
	}
}

func TestBuild_ShapeAllClassesAndDirections(t *testing.T) {
	c := newTestCalculator(t)
	tests := []struct {
		tag   string
		dir   model.Direction
		entry string
		class model.AssetClass
	}{
		{"BTC", model.Long, "65000", model.ClassMajor},
		{"BTC", model.Short, "65000", model.ClassMajor},
		{"ETH", model.Long, "2412.37", model.ClassMajor},
		{"PEPE", model.Long, "0.0000123", model.ClassDefault},
		{"PEPE", model.Short, "0.0000123", model.ClassDefault},
		{"SOL", model.Short, "145.5", model.ClassDefault},
	}
	for _, tt := range tests {
		entry, _ := decimal.NewFromString(tt.entry)
		p, err := c.Build(tt.tag, tt.tag, tt.dir, entry)
		if err != nil {
			t.Fatalf("Build(%s %s): %v", tt.tag, tt.dir, err)
		}
		if p.Class != tt.class {
			t.Errorf("%s: expected class %s, got %s", tt.tag, tt.class, p.Class)
		}
		checkShape(t, p)
	}
}

func TestBuild_MajorLongScenario(t *testing.T) {
	// BTC at 65000 with the -10% major stop lands on 58500
	c := newTestCalculator(t)
	p, err := c.Build("BTC", "BTC", model.Long, decimal.NewFromInt(65000))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Pair != "BTC/USDT" {
		t.Errorf("expected pair BTC/USDT, got %s", p.Pair)
	}
	if !p.StopLoss.Equal(decimal.NewFromInt(58500)) {
		t.Errorf("expected stop-loss 58500, got %s", p.StopLoss)
	}
	if !p.TakeProfits[0].Equal(decimal.NewFromInt(66300)) {
		t.Errorf("expected TP1 66300, got %s", p.TakeProfits[0])
	}
}

func TestBuild_DisplayTagNamesThePair(t *testing.T) {
	c := newTestCalculator(t)
	p, err := c.Build("PEPE", "1000PEPE", model.Short, decimal.RequireFromString("0.0123"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Pair != "1000PEPE/USDT" {
		t.Errorf("expected pair 1000PEPE/USDT, got %s", p.Pair)
	}
	if p.Class != model.ClassDefault {
		t.Errorf("class must follow the raw tag, got %s", p.Class)
	}
}

func TestBuild_SizingHint(t *testing.T) {
	c := newTestCalculator(t)
	btc, _ := c.Build("BTC", "BTC", model.Long, decimal.NewFromInt(65000))
	if btc.Sizing != "5% of portfolio" {
		t.Errorf("expected major sizing for BTC, got %q", btc.Sizing)
	}
	pepe, _ := c.Build("PEPE", "PEPE", model.Long, decimal.RequireFromString("0.0000123"))
	if pepe.Sizing != "2% of portfolio" {
		t.Errorf("expected default sizing for PEPE, got %q", pepe.Sizing)
	}
}

func TestBuild_RejectsNonPositiveEntry(t *testing.T) {
	c := newTestCalculator(t)
	if _, err := c.Build("BTC", "BTC", model.Long, decimal.Zero); err == nil {
		t.Error("expected error for zero entry")
	}
	if _, err := c.Build("BTC", "BTC", model.Long, decimal.NewFromInt(-1)); err == nil {
		t.Error("expected error for negative entry")
	}
}

func TestNewCalculator_RejectsMalformedTables(t *testing.T) {
	short := DefaultSettings()
	short.MajorLong.TakeProfits = short.MajorLong.TakeProfits[:5]
	if _, err := NewCalculator(short); err == nil {
		t.Error("expected error for 5-level ladder")
	}

	unordered := DefaultSettings()
	unordered.DefaultLong.TakeProfits = []float64{1.045, 1.20, 1.10, 1.35, 1.55, 1.75, 1.995}
	if _, err := NewCalculator(unordered); err == nil {
		t.Error("expected error for non-monotonic ladder")
	}

	badStop := DefaultSettings()
	badStop.MajorShort.StopLoss = 0.95
	if _, err := NewCalculator(badStop); err == nil {
		t.Error("expected error for stop-loss on the favorable side")
	}
}
