package quote

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"SignalRelay/internal/model"
)

// ErrNotFound means no usable price exists for an asset tag on either
// candidate symbol. Transport failures, unknown symbols, and malformed
// payloads all collapse into it: the caller must never crash on a bad
// quote.
var ErrNotFound = errors.New("quote: no usable price")

// PriceFetcher fetches the current price of one trading-pair symbol.
type PriceFetcher interface {
	TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	Name() string
}

// Resolver maps an asset tag to a trading-pair symbol and a live price.
// Quotes are never cached; concurrent calls for different tags are fine.
type Resolver struct {
	fetcher PriceFetcher
	timeout time.Duration
	log     zerolog.Logger
}

// NewResolver wires a Resolver over the given fetcher.
func NewResolver(fetcher PriceFetcher, timeout time.Duration, log zerolog.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resolver{
		fetcher: fetcher,
		timeout: timeout,
		log:     log.With().Str("component", "quote").Logger(),
	}
}

// Resolve tries TAG+"USDT" first and the rebased "1000"+TAG+"USDT"
// alternate second. One retry only, no backoff: a tag that fails both
// candidates is ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, tag string) (*model.PriceQuote, error) {
	for _, symbol := range []string{tag + "USDT", "1000" + tag + "USDT"} {
		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		price, err := r.fetcher.TickerPrice(cctx, symbol)
		cancel()
		if err != nil {
			r.log.Debug().Str("symbol", symbol).Err(err).Msg("candidate symbol failed")
			continue
		}
		if !price.IsPositive() {
			r.log.Debug().Str("symbol", symbol).Str("price", price.String()).Msg("non-positive price discarded")
			continue
		}
		return &model.PriceQuote{Symbol: symbol, Price: price}, nil
	}
	return nil, ErrNotFound
}
