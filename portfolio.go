// Package stockfolio implements a single-portfolio investment ledger: cash,
// per-asset holdings acquired in dated lots with FIFO cost-basis accounting,
// a priority queue of pending trade orders, mark-to-market valuation, and a
// flat text persistence format.
package stockfolio

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pkruk/stockfolio/date"
)

// holding groups the canonical asset record of a symbol with its purchase
// lots, kept in acquisition order.
type holding struct {
	asset *Asset
	lots  lots
}

// SaleResult reports the outcome of a sale: the gross revenue credited to
// cash and the realized profit against the FIFO cost basis.
type SaleResult struct {
	Revenue Money
	Profit  Money
}

// Portfolio owns the cash balance, the holdings ledger, and the pending-order
// queue. It is single-threaded: operations mutate cash and holdings together
// and are not safe for concurrent use.
type Portfolio struct {
	cash     Money
	currency string
	holdings map[string]*holding
	orders   *orderQueue
}

// NewPortfolio creates an empty portfolio with the given initial cash,
// denominated in the given ISO currency code.
func NewPortfolio(initialCash float64, currency string) (*Portfolio, error) {
	if err := validNonNegativeAmount("initial cash", initialCash); err != nil {
		return nil, err
	}
	currency, err := validIdentifier("currency", currency)
	if err != nil {
		return nil, err
	}
	return &Portfolio{
		cash:     M(initialCash, currency),
		currency: currency,
		holdings: make(map[string]*holding),
		orders:   newOrderQueue(),
	}, nil
}

// Cash returns the current cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Currency returns the portfolio's currency code.
func (p *Portfolio) Currency() string { return p.currency }

// AddAsset buys quantity units of the asset on purchaseDate. The cost comes
// from the asset's own pricing rules at its current market price. The buy
// fails with ErrInsufficientFunds when cash cannot cover the cost; nothing is
// mutated in that case. On the first buy of a symbol the portfolio stores an
// independent copy of the asset, so later mutations of the caller's instance
// cannot alter the ledger.
func (p *Portfolio) AddAsset(asset *Asset, quantity int64, purchaseDate date.Date) error {
	if asset == nil {
		return errValidationf("asset cannot be nil")
	}
	if err := validPositiveQuantity("quantity", quantity); err != nil {
		return err
	}
	if purchaseDate.IsZero() {
		return errValidationf("purchase date is missing")
	}

	cost, err := asset.PurchaseCost(quantity)
	if err != nil {
		return err
	}
	if p.cash.LessThan(cost) {
		return fmt.Errorf("cannot buy %d %s: required %s, available %s: %w",
			quantity, asset.Symbol(), cost, p.cash, ErrInsufficientFunds)
	}

	h, ok := p.holdings[asset.Symbol()]
	if !ok {
		h = &holding{asset: asset.Copy()}
		p.holdings[asset.Symbol()] = h
	}

	// The lot records the asset's market price, not any order price.
	h.lots = append(h.lots, Lot{Date: purchaseDate, UnitPrice: asset.MarketPrice(), Quantity: quantity})
	p.cash = p.cash.Sub(cost)
	return nil
}

// SellAsset sells quantity units of the held symbol at salePrice, consuming
// the oldest lots first. It fails with ErrUnknownAsset when the symbol is not
// held and with ErrInsufficientAssets when the held quantity is too small;
// holdings are unchanged in both cases. Cash is credited with the full
// revenue salePrice x quantity regardless of cost basis; the returned result
// carries the revenue and the realized FIFO profit.
func (p *Portfolio) SellAsset(symbol string, quantity int64, salePrice float64) (SaleResult, error) {
	symbol, err := validIdentifier("symbol", symbol)
	if err != nil {
		return SaleResult{}, err
	}
	if err := validPositiveQuantity("quantity", quantity); err != nil {
		return SaleResult{}, err
	}
	if err := validPositivePrice("sale price", salePrice); err != nil {
		return SaleResult{}, err
	}

	h, ok := p.holdings[symbol]
	if !ok {
		return SaleResult{}, fmt.Errorf("no holding for symbol %q: %w", symbol, ErrUnknownAsset)
	}
	held := h.lots.totalQuantity()
	if held < quantity {
		return SaleResult{}, fmt.Errorf("cannot sell %d of %s: holding only %d: %w",
			quantity, symbol, held, ErrInsufficientAssets)
	}

	sale := M(salePrice, "")
	remaining, profit := h.lots.sellFIFO(quantity, sale)
	if len(remaining) == 0 {
		delete(p.holdings, symbol)
	} else {
		h.lots = remaining
	}

	revenue := sale.MulQty(quantity)
	p.cash = p.cash.Add(revenue)
	return SaleResult{Revenue: revenue, Profit: profit}, nil
}

// AddOrder appends a pending order to the priority queue.
func (p *Portfolio) AddOrder(order *Order) error {
	if order == nil {
		return errValidationf("order cannot be nil")
	}
	p.orders.push(order)
	return nil
}

// PeekNextOrder returns the most attractive pending order without removing
// it, or nil when the queue is empty.
func (p *Portfolio) PeekNextOrder() *Order { return p.orders.peek() }

// PollNextOrder removes and returns the most attractive pending order, or
// nil when the queue is empty.
func (p *Portfolio) PollNextOrder() *Order { return p.orders.poll() }

// PendingOrders returns the pending orders in priority order without
// removing them.
func (p *Portfolio) PendingOrders() []*Order { return p.orders.all() }

// PendingOrderCount returns the number of pending orders.
func (p *Portfolio) PendingOrderCount() int { return p.orders.len() }

// Audit returns the total portfolio value: cash plus the real value of every
// holding at its aggregate quantity. Fee, storage, and spread adjustments
// apply once per symbol against the total, not per lot.
func (p *Portfolio) Audit() Money {
	total := p.cash
	for _, h := range p.holdings {
		total = total.Add(h.asset.RealValue(h.lots.totalQuantity()))
	}
	return total
}

// Asset returns the canonical asset record for the symbol, or nil when the
// symbol is not held.
func (p *Portfolio) Asset(symbol string) *Asset {
	h, ok := p.holdings[symbol]
	if !ok {
		return nil
	}
	return h.asset
}

// AssetQuantity returns the total held quantity for the symbol, summed over
// its lots, or 0 when the symbol is not held.
func (p *Portfolio) AssetQuantity(symbol string) int64 {
	h, ok := p.holdings[symbol]
	if !ok {
		return 0
	}
	return h.lots.totalQuantity()
}

// Lots returns copies of the purchase lots for the symbol in acquisition
// order. It returns nil when the symbol is not held.
func (p *Portfolio) Lots(symbol string) []Lot {
	h, ok := p.holdings[symbol]
	if !ok {
		return nil
	}
	return slices.Clone([]Lot(h.lots))
}

// Symbols returns the held symbols in lexical order.
func (p *Portfolio) Symbols() []string {
	return slices.Sorted(maps.Keys(p.holdings))
}

// HoldingsCount returns the number of held symbols.
func (p *Portfolio) HoldingsCount() int { return len(p.holdings) }

// SetMarketPrice updates the market price of the canonical asset record for
// the symbol. It fails with ErrUnknownAsset when the symbol is not held.
func (p *Portfolio) SetMarketPrice(symbol string, price float64) error {
	h, ok := p.holdings[symbol]
	if !ok {
		return fmt.Errorf("no holding for symbol %q: %w", symbol, ErrUnknownAsset)
	}
	return h.asset.SetMarketPrice(price)
}
