package stockfolio

import (
	"fmt"

	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType identifies the side of a trade order.
type OrderType int

const (
	// BuyOrder is a desired purchase.
	BuyOrder OrderType = iota
	// SellOrder is a desired sale.
	SellOrder
)

func (t OrderType) String() string {
	switch t {
	case BuyOrder:
		return "BUY"
	case SellOrder:
		return "SELL"
	default:
		return "unknown"
	}
}

// ParseOrderType parses a string into an OrderType.
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "BUY":
		return BuyOrder, nil
	case "SELL":
		return SellOrder, nil
	default:
		return 0, fmt.Errorf("unknown order type: %q", s)
	}
}

// Order is a desired trade: a symbol, a side, a quantity, a limit price, and
// a snapshot of the market price at creation. Orders are immutable once
// created.
type Order struct {
	id          string
	symbol      string
	typ         OrderType
	quantity    int64
	limitPrice  Money
	marketPrice Money
}

// NewOrder validates and creates an order.
func NewOrder(symbol string, typ OrderType, quantity int64, limitPrice, marketPrice float64) (*Order, error) {
	symbol, err := validIdentifier("asset symbol", symbol)
	if err != nil {
		return nil, err
	}
	if typ != BuyOrder && typ != SellOrder {
		return nil, errValidationf("unknown order type: %d", typ)
	}
	if err := validPositiveQuantity("quantity", quantity); err != nil {
		return nil, err
	}
	if err := validPositivePrice("limit price", limitPrice); err != nil {
		return nil, err
	}
	if err := validPositivePrice("market price", marketPrice); err != nil {
		return nil, err
	}
	return &Order{
		id:          uuid.NewString(),
		symbol:      symbol,
		typ:         typ,
		quantity:    quantity,
		limitPrice:  M(limitPrice, ""),
		marketPrice: M(marketPrice, ""),
	}, nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) Symbol() string     { return o.symbol }
func (o *Order) Type() OrderType    { return o.typ }
func (o *Order) Quantity() int64    { return o.quantity }
func (o *Order) LimitPrice() Money  { return o.limitPrice }
func (o *Order) MarketPrice() Money { return o.marketPrice }

// Attractiveness is the signed ranking value used to order pending orders:
// +limit price for a buy, -limit price for a sell. Higher polls first, so
// buys willing to pay more come before buys willing to pay less, and cheaper
// sell limits come before dearer ones.
func (o *Order) Attractiveness() decimal.Decimal {
	if o.typ == BuyOrder {
		return o.limitPrice.value
	}
	return o.limitPrice.value.Neg()
}

// orderEntry is a single order resting in the pending queue. seq is the
// insertion sequence, used only to keep the ordering total when two orders
// share an attractiveness.
type orderEntry struct {
	att   decimal.Decimal
	seq   uint64
	order *Order
}

// orderLess orders entries by attractiveness descending, then insertion
// sequence ascending, so Min() returns the most attractive pending order.
func orderLess(a, b orderEntry) bool {
	if !a.att.Equal(b.att) {
		return a.att.GreaterThan(b.att)
	}
	return a.seq < b.seq
}

// orderQueue is the priority collection of pending orders.
type orderQueue struct {
	tree *btree.BTreeG[orderEntry]
	seq  uint64
}

func newOrderQueue() *orderQueue {
	const degree = 16
	return &orderQueue{tree: btree.NewG(degree, orderLess)}
}

// push adds an order to the queue.
func (q *orderQueue) push(o *Order) {
	q.seq++
	q.tree.ReplaceOrInsert(orderEntry{att: o.Attractiveness(), seq: q.seq, order: o})
}

// peek returns the most attractive pending order without removing it, or nil
// when the queue is empty.
func (q *orderQueue) peek() *Order {
	entry, ok := q.tree.Min()
	if !ok {
		return nil
	}
	return entry.order
}

// poll removes and returns the most attractive pending order, or nil when
// the queue is empty.
func (q *orderQueue) poll() *Order {
	entry, ok := q.tree.DeleteMin()
	if !ok {
		return nil
	}
	return entry.order
}

// all returns the pending orders in priority order without removing them.
func (q *orderQueue) all() []*Order {
	orders := make([]*Order, 0, q.tree.Len())
	q.tree.Ascend(func(entry orderEntry) bool {
		orders = append(orders, entry.order)
		return true
	})
	return orders
}

func (q *orderQueue) len() int { return q.tree.Len() }
