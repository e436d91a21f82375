package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"SignalRelay/internal/model"
)

// ladder is a Ladder converted to exact decimal multipliers.
type ladder struct {
	takeProfits []decimal.Decimal
	stopLoss    decimal.Decimal
}

// Calculator builds trade plans from validated percentage tables.
// Pure after construction, safe for concurrent use.
type Calculator struct {
	majors   map[string]bool
	liquid   map[string]bool
	tables   map[model.AssetClass]map[model.Direction]ladder
	leverage string
	sizing   map[bool]string // keyed by liquid-major membership
}

// NewCalculator validates the table shape once at startup: exactly 7
// take-profit multipliers strictly escalating away from entry in the
// favorable direction, stop-loss strictly on the adverse side.
func NewCalculator(s Settings) (*Calculator, error) {
	tables := make(map[model.AssetClass]map[model.Direction]ladder)
	for _, entry := range []struct {
		class model.AssetClass
		dir   model.Direction
		src   Ladder
	}{
		{model.ClassMajor, model.Long, s.MajorLong},
		{model.ClassMajor, model.Short, s.MajorShort},
		{model.ClassDefault, model.Long, s.DefaultLong},
		{model.ClassDefault, model.Short, s.DefaultShort},
	} {
		l, err := convertLadder(entry.src, entry.dir)
		if err != nil {
			return nil, fmt.Errorf("%s %s ladder: %w", strings.ToLower(string(entry.class)), strings.ToLower(string(entry.dir)), err)
		}
		if tables[entry.class] == nil {
			tables[entry.class] = make(map[model.Direction]ladder)
		}
		tables[entry.class][entry.dir] = l
	}

	return &Calculator{
		majors:   toSet(s.Majors),
		liquid:   toSet(s.LiquidMajors),
		tables:   tables,
		leverage: s.Leverage,
		sizing:   map[bool]string{true: s.MajorSizing, false: s.DefaultSizing},
	}, nil
}

func convertLadder(src Ladder, dir model.Direction) (ladder, error) {
	if len(src.TakeProfits) != 7 {
		return ladder{}, fmt.Errorf("need exactly 7 take-profit multipliers, got %d", len(src.TakeProfits))
	}
	one := decimal.NewFromInt(1)

	tps := make([]decimal.Decimal, 0, 7)
	prev := one
	for i, m := range src.TakeProfits {
		d := decimal.NewFromFloat(m)
		if !d.IsPositive() {
			return ladder{}, fmt.Errorf("take-profit %d must be positive", i+1)
		}
		favorable := d.GreaterThan(prev)
		if dir == model.Short {
			favorable = d.LessThan(prev)
		}
		if !favorable {
			return ladder{}, fmt.Errorf("take-profit %d does not escalate away from entry", i+1)
		}
		prev = d
		tps = append(tps, d)
	}

	sl := decimal.NewFromFloat(src.StopLoss)
	adverse := sl.IsPositive() && sl.LessThan(one)
	if dir == model.Short {
		adverse = sl.GreaterThan(one)
	}
	if !adverse {
		return ladder{}, fmt.Errorf("stop-loss multiplier %v is not on the adverse side of entry", src.StopLoss)
	}

	return ladder{takeProfits: tps, stopLoss: sl}, nil
}

// ClassOf reports the percentage-table class of an asset tag.
func (c *Calculator) ClassOf(tag string) model.AssetClass {
	if c.majors[strings.ToUpper(tag)] {
		return model.ClassMajor
	}
	return model.ClassDefault
}

// Build derives the trade plan for one signal. displayTag names the pair
// in the notification (for CMP signals it is the resolved symbol base,
// which may carry a 1000 prefix); class and sizing follow the raw tag.
func (c *Calculator) Build(tag, displayTag string, dir model.Direction, entry decimal.Decimal) (*model.TradePlan, error) {
	if !entry.IsPositive() {
		return nil, fmt.Errorf("entry price must be positive, got %s", entry)
	}
	class := c.ClassOf(tag)
	table := c.tables[class][dir]

	tps := make([]decimal.Decimal, 0, len(table.takeProfits))
	for _, m := range table.takeProfits {
		tps = append(tps, entry.Mul(m))
	}

	return &model.TradePlan{
		Tag:         strings.ToUpper(tag),
		Pair:        strings.ToUpper(displayTag) + "/USDT",
		Direction:   dir,
		Class:       class,
		Entry:       entry,
		TakeProfits: tps,
		StopLoss:    entry.Mul(table.stopLoss),
		Leverage:    c.leverage,
		Sizing:      c.sizing[c.liquid[strings.ToUpper(tag)]],
	}, nil
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToUpper(t)] = true
	}
	return set
}
