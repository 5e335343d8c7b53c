package stockfolio

import (
	"strings"
	"testing"
)

func TestEncodeDecodeOrders_RoundTrip(t *testing.T) {
	orders := []*Order{
		must(NewOrder("AAPL", BuyOrder, 10, 108, 102)),
		must(NewOrder("GOLD", SellOrder, 3, 2100, 2050)),
	}

	var b strings.Builder
	if err := EncodeOrders(&b, orders); err != nil {
		t.Fatalf("EncodeOrders() error = %v", err)
	}
	if got := strings.Count(b.String(), "\n"); got != 2 {
		t.Fatalf("EncodeOrders() wrote %d lines, want 2:\n%s", got, b.String())
	}

	got, err := DecodeOrders(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("DecodeOrders() error = %v", err)
	}
	if len(got) != len(orders) {
		t.Fatalf("DecodeOrders() = %d orders, want %d", len(got), len(orders))
	}
	for i, want := range orders {
		o := got[i]
		if o.ID() != want.ID() {
			t.Errorf("order %d: ID = %q, want %q", i, o.ID(), want.ID())
		}
		if o.Symbol() != want.Symbol() || o.Type() != want.Type() || o.Quantity() != want.Quantity() {
			t.Errorf("order %d: got %s %s x%d, want %s %s x%d",
				i, o.Type(), o.Symbol(), o.Quantity(), want.Type(), want.Symbol(), want.Quantity())
		}
		if !o.LimitPrice().Equal(want.LimitPrice()) || !o.MarketPrice().Equal(want.MarketPrice()) {
			t.Errorf("order %d: prices %s/%s, want %s/%s",
				i, o.LimitPrice(), o.MarketPrice(), want.LimitPrice(), want.MarketPrice())
		}
	}
}

func TestDecodeOrders_Empty(t *testing.T) {
	orders, err := DecodeOrders(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeOrders(\"\") error = %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("DecodeOrders(\"\") = %d orders, want 0", len(orders))
	}
}

func TestDecodeOrders_SkipsBlankLines(t *testing.T) {
	data := `{"id":"a","symbol":"AAPL","type":"BUY","quantity":10,"limit_price":108,"market_price":102}` + "\n\n" +
		`{"id":"b","symbol":"GOLD","type":"SELL","quantity":3,"limit_price":2100,"market_price":2050}` + "\n"
	orders, err := DecodeOrders(strings.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeOrders() error = %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("DecodeOrders() = %d orders, want 2", len(orders))
	}
	if orders[0].ID() != "a" || orders[1].ID() != "b" {
		t.Errorf("IDs = %q, %q, want a, b", orders[0].ID(), orders[1].ID())
	}
}

func TestDecodeOrders_Errors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all\n"},
		{"unknown type", `{"symbol":"AAPL","type":"SHORT","quantity":10,"limit_price":108,"market_price":102}` + "\n"},
		{"zero quantity", `{"symbol":"AAPL","type":"BUY","quantity":0,"limit_price":108,"market_price":102}` + "\n"},
		{"zero limit", `{"symbol":"AAPL","type":"BUY","quantity":10,"limit_price":0,"market_price":102}` + "\n"},
		{"empty symbol", `{"symbol":"","type":"BUY","quantity":10,"limit_price":108,"market_price":102}` + "\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := DecodeOrders(strings.NewReader(c.data)); !IsDataIntegrity(err) {
				t.Errorf("DecodeOrders() error = %v, want a DataIntegrityError", err)
			}
		})
	}
}
