package quote

import (
	"context"
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// BinanceFetcher reads spot ticker prices from the public Binance API.
// No API key is needed for the price endpoint.
type BinanceFetcher struct {
	client *binance.Client
}

// NewBinanceFetcher creates a fetcher against the public endpoint.
func NewBinanceFetcher() *BinanceFetcher {
	return &BinanceFetcher{client: binance.NewClient("", "")}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// TickerPrice fetches the last price of one symbol. The payload is
// untrusted: absent symbols and unparsable prices come back as errors.
func (f *BinanceFetcher) TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := f.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance ticker %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("binance ticker %s: empty response", symbol)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance ticker %s: bad price %q: %w", symbol, prices[0].Price, err)
	}
	return price, nil
}
