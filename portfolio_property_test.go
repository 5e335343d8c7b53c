package stockfolio

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkruk/stockfolio/date"
	"pgregory.net/rapid"
)

// Random buy/sell sequences must conserve quantities and keep cash and
// holdings consistent with the accepted operations alone.
func TestProperty_BuySellConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := must(NewPortfolio(1_000_000, "USD"))
		asset := must(NewShare("AAPL", "Apple", 100))
		on := day(2024, time.January, 1)

		var held int64
		expectedCash := M(1_000_000, "USD")

		n := rapid.IntRange(1, 60).Draw(t, "numOps")
		for i := 0; i < n; i++ {
			quantity := rapid.Int64Range(1, 50).Draw(t, fmt.Sprintf("qty-%d", i))
			price := float64(rapid.Int64Range(1, 5000).Draw(t, fmt.Sprintf("price-%d", i)))

			if rapid.Bool().Draw(t, fmt.Sprintf("isBuy-%d", i)) {
				if err := asset.SetMarketPrice(price); err != nil {
					t.Fatalf("SetMarketPrice(%v) error = %v", price, err)
				}
				cost := must(asset.PurchaseCost(quantity))
				err := p.AddAsset(asset, quantity, on)
				if expectedCash.LessThan(cost) {
					if !errors.Is(err, ErrInsufficientFunds) {
						t.Fatalf("AddAsset() error = %v, want ErrInsufficientFunds", err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("AddAsset() error = %v", err)
				}
				held += quantity
				expectedCash = expectedCash.Sub(cost)
			} else {
				res, err := p.SellAsset("AAPL", quantity, price)
				if held == 0 {
					if !errors.Is(err, ErrUnknownAsset) {
						t.Fatalf("SellAsset() with nothing held error = %v, want ErrUnknownAsset", err)
					}
					continue
				}
				if quantity > held {
					if !errors.Is(err, ErrInsufficientAssets) {
						t.Fatalf("SellAsset() error = %v, want ErrInsufficientAssets", err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("SellAsset() error = %v", err)
				}
				held -= quantity
				expectedCash = expectedCash.Add(res.Revenue)
			}

			if got := p.AssetQuantity("AAPL"); got != held {
				t.Fatalf("AssetQuantity() = %d, want %d", got, held)
			}
			if !p.Cash().Equal(expectedCash) {
				t.Fatalf("Cash() = %s, want %s", p.Cash(), expectedCash)
			}
			var lotTotal int64
			for _, lot := range p.Lots("AAPL") {
				if lot.Quantity <= 0 {
					t.Fatalf("lot with non-positive quantity: %+v", lot)
				}
				lotTotal += lot.Quantity
			}
			if lotTotal != held {
				t.Fatalf("sum of lot quantities = %d, want %d", lotTotal, held)
			}
		}
	})
}

// Whatever sequence of orders rests in the queue, polling drains it in
// non-increasing attractiveness.
func TestProperty_OrderQueueDrainsByAttractiveness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := must(NewPortfolio(1000, "USD"))
		n := rapid.IntRange(1, 40).Draw(t, "numOrders")
		for i := 0; i < n; i++ {
			typ := BuyOrder
			if rapid.Bool().Draw(t, fmt.Sprintf("isSell-%d", i)) {
				typ = SellOrder
			}
			limit := float64(rapid.Int64Range(1, 1000).Draw(t, fmt.Sprintf("limit-%d", i)))
			if err := p.AddOrder(must(NewOrder("AAPL", typ, 1, limit, 100))); err != nil {
				t.Fatalf("AddOrder() error = %v", err)
			}
		}

		prev := p.PollNextOrder()
		for o := p.PollNextOrder(); o != nil; o = p.PollNextOrder() {
			if o.Attractiveness().GreaterThan(prev.Attractiveness()) {
				t.Fatalf("polled attractiveness %s after %s", o.Attractiveness(), prev.Attractiveness())
			}
			prev = o
		}
		if got := p.PendingOrderCount(); got != 0 {
			t.Fatalf("PendingOrderCount() after drain = %d, want 0", got)
		}
	})
}

// Saving and reloading a randomly built portfolio preserves cash, holdings,
// and lots exactly.
func TestProperty_SaveLoadRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := must(NewPortfolio(10_000_000, "USD"))
		numAssets := rapid.IntRange(0, 5).Draw(t, "numAssets")
		for i := 0; i < numAssets; i++ {
			symbol := fmt.Sprintf("SYM%d", i)
			price := float64(rapid.Int64Range(1, 1000).Draw(t, fmt.Sprintf("price-%d", i)))
			var a *Asset
			switch rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("type-%d", i)) {
			case 0:
				a = must(NewShare(symbol, symbol, price))
			case 1:
				a = must(NewCommodity(symbol, symbol, price))
			default:
				a = must(NewCurrency(symbol, symbol, price, price*0.01))
			}
			numLots := rapid.IntRange(1, 4).Draw(t, fmt.Sprintf("lots-%d", i))
			for j := 0; j < numLots; j++ {
				quantity := rapid.Int64Range(1, 100).Draw(t, fmt.Sprintf("qty-%d-%d", i, j))
				mustBuyRapid(t, p, a, quantity, day(2024, time.January, 1+j))
			}
		}

		var b strings.Builder
		if err := Save(&b, p); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := Load(strings.NewReader(b.String()))
		if err != nil {
			t.Fatalf("Load() error = %v\ninput:\n%s", err, b.String())
		}

		if !got.Cash().Equal(p.Cash()) {
			t.Fatalf("loaded Cash() = %s, want %s", got.Cash(), p.Cash())
		}
		if got.HoldingsCount() != p.HoldingsCount() {
			t.Fatalf("loaded HoldingsCount() = %d, want %d", got.HoldingsCount(), p.HoldingsCount())
		}
		for _, symbol := range p.Symbols() {
			if got.AssetQuantity(symbol) != p.AssetQuantity(symbol) {
				t.Fatalf("loaded AssetQuantity(%s) = %d, want %d",
					symbol, got.AssetQuantity(symbol), p.AssetQuantity(symbol))
			}
			wantLots, gotLots := p.Lots(symbol), got.Lots(symbol)
			if len(gotLots) != len(wantLots) {
				t.Fatalf("loaded Lots(%s) = %d lots, want %d", symbol, len(gotLots), len(wantLots))
			}
			for k := range wantLots {
				if gotLots[k].Date != wantLots[k].Date ||
					gotLots[k].Quantity != wantLots[k].Quantity ||
					!gotLots[k].UnitPrice.Equal(wantLots[k].UnitPrice) {
					t.Fatalf("loaded Lots(%s)[%d] = %+v, want %+v", symbol, k, gotLots[k], wantLots[k])
				}
			}
		}
	})
}

// mustBuyRapid is mustBuy for rapid's t.
func mustBuyRapid(t *rapid.T, p *Portfolio, a *Asset, quantity int64, on date.Date) {
	if err := p.AddAsset(a, quantity, on); err != nil {
		t.Fatalf("AddAsset(%s, %d) error = %v", a.Symbol(), quantity, err)
	}
}
