package stockfolio

import (
	"strings"
	"testing"
	"time"
)

const quoteDoc = `{
  "quotes": [
    {"symbol": "AAPL", "price": 175.5},
    {"symbol": "GOLD", "price": 2100.0},
    {"symbol": "MSFT", "price": 410.0}
  ]
}`

func TestDecodeQuotes(t *testing.T) {
	quotes, err := DecodeQuotes(strings.NewReader(quoteDoc))
	if err != nil {
		t.Fatalf("DecodeQuotes() error = %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("DecodeQuotes() = %d quotes, want 3", len(quotes))
	}
	if quotes[0].Symbol != "AAPL" || quotes[0].Price != 175.5 {
		t.Errorf("quotes[0] = %+v, want AAPL at 175.5", quotes[0])
	}
}

func TestDecodeQuotes_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json"},
		{"no quotes array", `{"prices": []}`},
		{"missing symbol", `{"quotes": [{"price": 175.5}]}`},
		{"empty symbol", `{"quotes": [{"symbol": "", "price": 175.5}]}`},
		{"missing price", `{"quotes": [{"symbol": "AAPL"}]}`},
		{"price not a number", `{"quotes": [{"symbol": "AAPL", "price": "175.5"}]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeQuotes(strings.NewReader(c.data)); err == nil {
				t.Error("DecodeQuotes() expected an error")
			}
		})
	}
}

func TestPortfolio_ApplyQuotes(t *testing.T) {
	p := must(NewPortfolio(100000, "USD"))
	mustBuy(t, p, must(NewShare("AAPL", "Apple", 150)), 10, day(2024, time.March, 1))
	mustBuy(t, p, must(NewCommodity("GOLD", "Gold", 2000)), 2, day(2024, time.March, 1))

	quotes := must(DecodeQuotes(strings.NewReader(quoteDoc)))
	applied, err := p.ApplyQuotes(quotes)
	if err != nil {
		t.Fatalf("ApplyQuotes() error = %v", err)
	}
	// MSFT is not held and must be skipped.
	if applied != 2 {
		t.Errorf("ApplyQuotes() applied = %d, want 2", applied)
	}
	if got := p.Asset("AAPL").MarketPrice(); !got.Equal(M(175.5, "")) {
		t.Errorf("AAPL market price = %s, want 175.5", got)
	}
	if got := p.Asset("GOLD").MarketPrice(); !got.Equal(M(2100.0, "")) {
		t.Errorf("GOLD market price = %s, want 2100", got)
	}
}

func TestPortfolio_ApplyQuotes_InvalidPrice(t *testing.T) {
	p := must(NewPortfolio(100000, "USD"))
	mustBuy(t, p, must(NewShare("AAPL", "Apple", 150)), 10, day(2024, time.March, 1))

	_, err := p.ApplyQuotes([]Quote{{Symbol: "AAPL", Price: -1}})
	if !IsValidation(err) {
		t.Errorf("ApplyQuotes() error = %v, want a ValidationError", err)
	}
	// The held price is untouched by the rejected quote.
	if got := p.Asset("AAPL").MarketPrice(); !got.Equal(M(150.0, "")) {
		t.Errorf("AAPL market price = %s, want 150", got)
	}
}
