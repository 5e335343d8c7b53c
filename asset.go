package stockfolio

import "fmt"

// AssetType identifies the pricing rules of an instrument.
type AssetType int

const (
	// Share carries a flat handling fee on purchase and valuation.
	Share AssetType = iota
	// Commodity carries a per-unit storage cost on purchase and valuation.
	Commodity
	// Currency is quoted with a bid/ask spread and carries no fee.
	Currency
)

func (t AssetType) String() string {
	switch t {
	case Share:
		return "SHARE"
	case Commodity:
		return "COMMODITY"
	case Currency:
		return "CURRENCY"
	default:
		return "unknown"
	}
}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch s {
	case "SHARE":
		return Share, nil
	case "COMMODITY":
		return Commodity, nil
	case "CURRENCY":
		return Currency, nil
	default:
		return 0, fmt.Errorf("unknown asset type: %q", s)
	}
}

// Per-variant cost parameters.
const (
	handlingFee        = 5.0 // flat, per share transaction
	storageCostPerUnit = 1.0
)

// Asset represents a tradeable instrument: a share, a commodity, or a
// currency position. Identity is the symbol alone; the market price is the
// only mutable field.
type Asset struct {
	symbol      string
	name        string
	typ         AssetType
	marketPrice Money
	spread      Money // currencies only, 0 <= spread < marketPrice
}

// newAsset validates the fields every variant shares.
func newAsset(symbol, name string, typ AssetType, marketPrice float64) (*Asset, error) {
	symbol, err := validIdentifier("symbol", symbol)
	if err != nil {
		return nil, err
	}
	name, err = validIdentifier("name", name)
	if err != nil {
		return nil, err
	}
	if err := validPositivePrice("market price", marketPrice); err != nil {
		return nil, err
	}
	return &Asset{symbol: symbol, name: name, typ: typ, marketPrice: M(marketPrice, "")}, nil
}

// NewShare creates a share asset.
func NewShare(symbol, name string, marketPrice float64) (*Asset, error) {
	return newAsset(symbol, name, Share, marketPrice)
}

// NewCommodity creates a commodity asset.
func NewCommodity(symbol, name string, marketPrice float64) (*Asset, error) {
	return newAsset(symbol, name, Commodity, marketPrice)
}

// NewCurrency creates a currency asset quoted at marketPrice (ask) with the
// given bid/ask spread.
func NewCurrency(symbol, name string, marketPrice, spread float64) (*Asset, error) {
	a, err := newAsset(symbol, name, Currency, marketPrice)
	if err != nil {
		return nil, err
	}
	if spread < 0 {
		return nil, errValidationf("spread cannot be negative, got %v", spread)
	}
	if spread >= marketPrice {
		return nil, errValidationf("spread must be lower than the market price, got spread %v at price %v", spread, marketPrice)
	}
	a.spread = M(spread, "")
	return a, nil
}

func (a *Asset) Symbol() string     { return a.symbol }
func (a *Asset) Name() string       { return a.name }
func (a *Asset) Type() AssetType    { return a.typ }
func (a *Asset) MarketPrice() Money { return a.marketPrice }

// Spread returns the bid/ask spread. It is zero for non-currency assets.
func (a *Asset) Spread() Money { return a.spread }

// SetMarketPrice updates the market price. The new price must be finite and
// strictly positive.
func (a *Asset) SetMarketPrice(price float64) error {
	if err := validPositivePrice("market price", price); err != nil {
		return err
	}
	a.marketPrice = M(price, "")
	return nil
}

// PurchaseCost returns the total cost of acquiring qty units at the current
// market price, including the variant's fee or storage cost.
func (a *Asset) PurchaseCost(qty int64) (Money, error) {
	if err := validPositiveQuantity("quantity", qty); err != nil {
		return Money{}, err
	}
	base := a.marketPrice.MulQty(qty)
	switch a.typ {
	case Share:
		return base.Add(M(handlingFee, "")), nil
	case Commodity:
		return base.Add(M(storageCostPerUnit, "").MulQty(qty)), nil
	default: // Currency buys at the ask with no fee.
		return base, nil
	}
}

// RealValue returns the mark-to-market value of qty units: market price
// adjusted by the variant's fee, storage cost, or bid spread.
func (a *Asset) RealValue(qty int64) Money {
	base := a.marketPrice.MulQty(qty)
	switch a.typ {
	case Share:
		return base.Sub(M(handlingFee, ""))
	case Commodity:
		return base.Sub(M(storageCostPerUnit, "").MulQty(qty))
	default: // Currency values at the bid.
		return base.Sub(a.spread.MulQty(qty))
	}
}

// Copy returns an independent instance sharing symbol, name, price, and
// spread. Mutating the copy never alters the original.
func (a *Asset) Copy() *Asset {
	c := *a
	return &c
}
