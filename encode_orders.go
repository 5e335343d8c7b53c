package stockfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jorder is the JSONL representation of a pending order.
type jorder struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	Type        string          `json:"type"`
	Quantity    int64           `json:"quantity"`
	LimitPrice  decimal.Decimal `json:"limit_price"`
	MarketPrice decimal.Decimal `json:"market_price"`
}

// EncodeOrders writes pending orders as JSONL, one order per line. Combined
// with DecodeOrders it lets the order queue survive between process runs;
// the portfolio line format deliberately does not carry orders.
func EncodeOrders(w io.Writer, orders []*Order) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, o := range orders {
		if o == nil {
			return errValidationf("order cannot be nil")
		}
		j := jorder{
			ID:          o.id,
			Symbol:      o.symbol,
			Type:        o.typ.String(),
			Quantity:    o.quantity,
			LimitPrice:  o.limitPrice.value,
			MarketPrice: o.marketPrice.value,
		}
		if err := enc.Encode(j); err != nil {
			return fmt.Errorf("cannot encode order %s: %w", o.id, err)
		}
	}
	return bw.Flush()
}

// DecodeOrders reads orders back from a JSONL stream. Every decoded order is
// rebuilt through NewOrder, so a corrupt stream cannot introduce orders that
// could not have been created at runtime. Errors carry the line number.
func DecodeOrders(r io.Reader) ([]*Order, error) {
	var orders []*Order
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var j jorder
		if err := json.Unmarshal(line, &j); err != nil {
			return nil, errIntegrityf(i, "invalid order: %v", err)
		}
		typ, err := ParseOrderType(j.Type)
		if err != nil {
			return nil, errIntegrityf(i, "%v", err)
		}
		o, err := NewOrder(j.Symbol, typ, j.Quantity, j.LimitPrice.InexactFloat64(), j.MarketPrice.InexactFloat64())
		if err != nil {
			return nil, errIntegrityf(i, "invalid order: %v", err)
		}
		if j.ID != "" {
			o.id = j.ID
		}
		orders = append(orders, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read orders: %w", err)
	}
	return orders, nil
}
