package model

import "github.com/shopspring/decimal"

// AssetClass selects the percentage table and the price rendering regime.
type AssetClass string

const (
	// ClassMajor covers the allow-listed high-cap assets (whole-number prices).
	ClassMajor AssetClass = "MAJOR"
	// ClassDefault covers everything else (significant-decimal prices).
	ClassDefault AssetClass = "DEFAULT"
)

// TradePlan is the computed notification payload for one signal.
// Immutable once built; it exists only for formatting and dispatch.
//
// Invariants: TakeProfits holds exactly 7 levels ordered nearest to
// farthest from entry, strictly monotonic in the trade's favorable
// direction; StopLoss sits strictly on the adverse side of entry.
type TradePlan struct {
	Tag         string
	Pair        string // display pair, e.g. "BTC/USDT"
	Direction   Direction
	Class       AssetClass
	Entry       decimal.Decimal
	TakeProfits []decimal.Decimal
	StopLoss    decimal.Decimal
	Leverage    string
	Sizing      string
}
