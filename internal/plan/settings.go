package plan

// Ladder is one percentage table: 7 multiplicative take-profit levels
// ordered nearest to farthest from entry, plus a stop-loss multiplier.
type Ladder struct {
	TakeProfits []float64 `yaml:"take_profits"`
	StopLoss    float64   `yaml:"stop_loss"`
}

// Settings is the business-policy side of plan building. The numbers
// are deliberately configuration, not code: they drift with the system
// owner's risk appetite. NewCalculator validates the shape.
type Settings struct {
	Majors        []string `yaml:"majors"`         // dedicated tables + whole-number prices
	LiquidMajors  []string `yaml:"liquid_majors"`  // larger sizing hint allow-list
	Leverage      string   `yaml:"leverage"`
	MajorSizing   string   `yaml:"major_sizing"`
	DefaultSizing string   `yaml:"default_sizing"`
	MajorLong     Ladder   `yaml:"major_long"`
	MajorShort    Ladder   `yaml:"major_short"`
	DefaultLong   Ladder   `yaml:"default_long"`
	DefaultShort  Ladder   `yaml:"default_short"`
}

// DefaultSettings returns the tables used when the config file has none.
// Majors escalate +2%..+30% with a -10% stop; everything else gets the
// wider +4.5%..+99.5% ladder with a -30% stop. Shorts mirror below 1.0.
func DefaultSettings() Settings {
	return Settings{
		Majors:        []string{"BTC", "ETH"},
		LiquidMajors:  []string{"BTC", "ETH", "SOL", "BNB"},
		Leverage:      "2x-5x",
		MajorSizing:   "5% of portfolio",
		DefaultSizing: "2% of portfolio",
		MajorLong: Ladder{
			TakeProfits: []float64{1.02, 1.05, 1.08, 1.12, 1.17, 1.23, 1.30},
			StopLoss:    0.90,
		},
		MajorShort: Ladder{
			TakeProfits: []float64{0.98, 0.95, 0.92, 0.88, 0.83, 0.77, 0.70},
			StopLoss:    1.10,
		},
		DefaultLong: Ladder{
			TakeProfits: []float64{1.045, 1.10, 1.20, 1.35, 1.55, 1.75, 1.995},
			StopLoss:    0.70,
		},
		DefaultShort: Ladder{
			TakeProfits: []float64{0.955, 0.90, 0.80, 0.65, 0.50, 0.35, 0.20},
			StopLoss:    1.30,
		},
	}
}
