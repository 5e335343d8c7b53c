// Package renderer renders portfolio reports to markdown. It is pure
// presentation over already-computed data: the domain types carry the exact
// values and their formatting.
package renderer

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pkruk/stockfolio"
)

// Summary is the view of a portfolio for the report.
type Summary struct {
	// Cash is the current cash balance.
	Cash stockfolio.Money
	// TotalValue is the audited total portfolio value.
	TotalValue stockfolio.Money
	// Holdings lists the held assets, sorted by type then market value descending.
	Holdings []HoldingRow
	// PendingOrders is the number of orders waiting in the queue.
	PendingOrders int
}

// HoldingRow represents a single held asset in the report.
type HoldingRow struct {
	Symbol      string
	Type        string
	Name        string
	Quantity    int64
	MarketValue stockfolio.Money
}

// NewSummary builds the report view from a portfolio.
func NewSummary(p *stockfolio.Portfolio) *Summary {
	s := &Summary{
		Cash:          p.Cash(),
		TotalValue:    p.Audit(),
		PendingOrders: p.PendingOrderCount(),
	}

	for _, symbol := range p.Symbols() {
		asset := p.Asset(symbol)
		quantity := p.AssetQuantity(symbol)
		s.Holdings = append(s.Holdings, HoldingRow{
			Symbol:      symbol,
			Type:        asset.Type().String(),
			Name:        asset.Name(),
			Quantity:    quantity,
			MarketValue: asset.RealValue(quantity),
		})
	}

	// Type first, then market value descending.
	sort.SliceStable(s.Holdings, func(i, j int) bool {
		if s.Holdings[i].Type != s.Holdings[j].Type {
			return s.Holdings[i].Type < s.Holdings[j].Type
		}
		return s.Holdings[i].MarketValue.GreaterThan(s.Holdings[j].MarketValue)
	})
	return s
}

const summaryTemplate = `# Portfolio Report

- Cash: {{.Cash}}
- Total value: {{.TotalValue}}
- Pending orders: {{.PendingOrders}}

{{if .Holdings -}}
| Symbol | Type | Name | Quantity | Market Value |
|--------|------|------|---------:|-------------:|
{{range .Holdings -}}
| {{.Symbol}} | {{.Type}} | {{.Name}} | {{.Quantity}} | {{.MarketValue}} |
{{end -}}
{{else -}}
No assets held.
{{end -}}
`

// SummaryMarkdown renders the summary to a markdown string.
func SummaryMarkdown(s *Summary) string {
	tmpl, err := template.New("summary").Parse(summaryTemplate)
	if err != nil {
		return fmt.Sprintf("error parsing summary template: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, s); err != nil {
		return fmt.Sprintf("error executing summary template: %v", err)
	}
	return b.String()
}
