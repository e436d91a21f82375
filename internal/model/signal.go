package model

import "github.com/shopspring/decimal"

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// EntryMode says where the entry price comes from.
type EntryMode string

const (
	// EntryCMP defers the entry price to a live quote ("current market price").
	EntryCMP EntryMode = "CMP"
	// EntryManual uses the price written in the message.
	EntryManual EntryMode = "MANUAL"
)

// Signal is one detected open/re-open instruction for a single asset.
// A message may yield zero, one, or many Signals.
type Signal struct {
	Tag       string // normalized uppercase asset tag, never empty
	Direction Direction
	Mode      EntryMode
	Price     decimal.Decimal // set only when Mode == EntryManual
	Reopen    bool
}

// CancelScope distinguishes single-asset cancels from the global one.
type CancelScope string

const (
	CancelSingleAsset CancelScope = "SINGLE"
	CancelAllShorts   CancelScope = "ALL_SHORTS"
)

// CancelAllTag is the tag used for the global all-shorts cancel.
const CancelAllTag = "ALL"

// CancelRequest asks to close a position (or every short).
type CancelRequest struct {
	Tag   string
	Scope CancelScope
}

// PriceQuote is a resolved trading pair symbol with its current price.
// Quotes are never cached; repeated resolutions may observe different prices.
type PriceQuote struct {
	Symbol string // e.g. "BTCUSDT" or "1000PEPEUSDT"
	Price  decimal.Decimal
}
