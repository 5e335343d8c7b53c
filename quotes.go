package stockfolio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Quote is a market price observed for a symbol, imported from a quote
// document. This is a one-shot file import, not a market-data feed.
type Quote struct {
	Symbol string
	Price  float64
}

// DecodeQuotes extracts symbol/price pairs from a JSON quote document of the
// form {"quotes": [{"symbol": "AAPL", "price": 150.0}, ...]}.
func DecodeQuotes(r io.Reader) ([]Quote, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid quote document: %w", err)
	}

	jval, err := jsonpath.Get("$.quotes[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("quote document has no quotes array: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a single
		// answer; normalize to a list.
		jlist = []any{jval}
	}

	quotes := make([]Quote, 0, len(jlist))
	for n, jentry := range jlist {
		jsym, err := jsonpath.Get("$.symbol", jentry)
		if err != nil {
			return nil, fmt.Errorf("quote %d has no symbol: %w", n, err)
		}
		symbol, ok := jsym.(string)
		if !ok || symbol == "" {
			return nil, fmt.Errorf("quote %d: symbol must be a non-empty string, got %v", n, jsym)
		}
		jprice, err := jsonpath.Get("$.price", jentry)
		if err != nil {
			return nil, fmt.Errorf("quote %q has no price: %w", symbol, err)
		}
		price, ok := jprice.(float64)
		if !ok {
			return nil, fmt.Errorf("quote %q: price must be a number, got %v", symbol, jprice)
		}
		quotes = append(quotes, Quote{Symbol: symbol, Price: price})
	}
	return quotes, nil
}

// ApplyQuotes updates the market price of every held symbol present in
// quotes and reports how many applied. Quotes for symbols that are not held
// are skipped. An invalid price aborts with a validation error.
func (p *Portfolio) ApplyQuotes(quotes []Quote) (applied int, err error) {
	for _, q := range quotes {
		if p.Asset(q.Symbol) == nil {
			continue
		}
		if err := p.SetMarketPrice(q.Symbol, q.Price); err != nil {
			return applied, fmt.Errorf("quote %q: %w", q.Symbol, err)
		}
		applied++
	}
	return applied, nil
}
