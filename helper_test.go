package stockfolio

import (
	"testing"
	"time"

	"github.com/pkruk/stockfolio/date"
)

// must unwraps a constructor result in fixtures that cannot fail.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }

func mustBuy(t *testing.T, p *Portfolio, a *Asset, quantity int64, on date.Date) {
	t.Helper()
	if err := p.AddAsset(a, quantity, on); err != nil {
		t.Fatalf("AddAsset(%s, %d) error = %v", a.Symbol(), quantity, err)
	}
}
