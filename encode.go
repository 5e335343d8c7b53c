package stockfolio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkruk/stockfolio/date"
	"github.com/shopspring/decimal"
)

// This file implements the flat text persistence format, one record per line
// with fields separated by " | ":
//
//	HEADER | CASH | <non-negative decimal>
//	ASSET  | <SHARE|COMMODITY|CURRENCY> | <symbol>
//	LOT    | <ISO-8601 date> | <positive integer quantity> | <positive decimal unit price>
//
// Exactly one HEADER line comes first. Each ASSET line opens a block; the LOT
// lines up to the next ASSET line or end-of-file belong to it; a block with
// no lots is invalid. Blank lines are skipped. Loading replays every lot
// through the normal buy path, so the fee and cost rules apply to loaded
// portfolios exactly as they do at runtime.

const (
	fieldSep     = " | "
	prefixHeader = "HEADER"
	prefixAsset  = "ASSET"
	prefixLot    = "LOT"
	cashKey      = "CASH"
)

// DefaultCurrency denominates portfolios reconstructed from a file; the wire
// format does not carry a currency code.
const DefaultCurrency = "USD"

// Save writes the portfolio's full state to w: cash, then for each held
// symbol in lexical order its asset type and symbol followed by one LOT line
// per purchase lot in acquisition order. Pending orders are not part of this
// format; see EncodeOrders.
func Save(w io.Writer, p *Portfolio) error {
	if p == nil {
		return errValidationf("portfolio cannot be nil")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s%s%s%s\n", prefixHeader, fieldSep, cashKey, fieldSep, p.cash.value.String())
	for _, symbol := range p.Symbols() {
		asset := p.Asset(symbol)
		fmt.Fprintf(bw, "%s%s%s%s%s\n", prefixAsset, fieldSep, asset.Type(), fieldSep, symbol)
		for _, lot := range p.Lots(symbol) {
			fmt.Fprintf(bw, "%s%s%s%s%d%s%s\n",
				prefixLot, fieldSep, lot.Date, fieldSep, lot.Quantity, fieldSep, lot.UnitPrice.value.String())
		}
	}
	return bw.Flush()
}

// SaveFile writes the portfolio to the named file.
func SaveFile(path string, p *Portfolio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open %q for writing: %w", path, err)
	}
	defer f.Close()
	if err := Save(f, p); err != nil {
		return fmt.Errorf("cannot save portfolio to %q: %w", path, err)
	}
	return nil
}

// assetBlock accumulates one ASSET line and its following LOT lines during
// parsing, before any portfolio state exists.
type assetBlock struct {
	line     int // line number of the ASSET line
	typ      AssetType
	symbol   string
	lots     []Lot
	declared int64 // running quantity total accumulated while parsing
}

// Load reads a portfolio back from r. Parsing runs a small state machine
// with two states, "no current block" and "accumulating lots", flushing the
// open block on every ASSET line and once more at end-of-file. All
// structural and semantic checks happen before any portfolio is built; any
// violation returns a DataIntegrityError and no portfolio.
func Load(r io.Reader) (*Portfolio, error) {
	savedCash, blocks, err := parse(r)
	if err != nil {
		return nil, err
	}
	return replay(savedCash, blocks)
}

// LoadFile reads a portfolio from the named file.
func LoadFile(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load portfolio from %q: %w", path, err)
	}
	return p, nil
}

// parse scans the line format into the saved cash value and the list of
// asset blocks without touching portfolio state.
func parse(r io.Reader) (cash decimal.Decimal, blocks []assetBlock, err error) {
	scanner := bufio.NewScanner(r)
	var (
		headerSeen bool
		current    *assetBlock
		i          int // 1-based line number
	)

	// flush closes the accumulating block; a block with zero lots is invalid.
	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.lots) == 0 {
			return errIntegrityf(current.line, "asset %s has no purchase lots", current.symbol)
		}
		blocks = append(blocks, *current)
		current = nil
		return nil
	}

	for scanner.Scan() {
		i++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}

		switch fields[0] {
		case prefixHeader:
			if headerSeen {
				return cash, nil, errIntegrityf(i, "unexpected second HEADER line")
			}
			if len(fields) != 3 {
				return cash, nil, errIntegrityf(i, "HEADER line must have 3 fields, got %d in %q", len(fields), line)
			}
			if fields[1] != cashKey {
				return cash, nil, errIntegrityf(i, "expected %s, got %q", cashKey, fields[1])
			}
			cash, err = decimal.NewFromString(fields[2])
			if err != nil {
				return cash, nil, errIntegrityf(i, "invalid cash value %q", fields[2])
			}
			if cash.IsNegative() {
				return cash, nil, errIntegrityf(i, "cash cannot be negative, got %s", cash)
			}
			headerSeen = true

		case prefixAsset:
			if !headerSeen {
				return cash, nil, errIntegrityf(i, "expected HEADER first, got %q", line)
			}
			if err := flush(); err != nil {
				return cash, nil, err
			}
			if len(fields) != 3 {
				return cash, nil, errIntegrityf(i, "ASSET line must have 3 fields, got %d in %q", len(fields), line)
			}
			typ, err := ParseAssetType(fields[1])
			if err != nil {
				return cash, nil, errIntegrityf(i, "%v", err)
			}
			if fields[2] == "" {
				return cash, nil, errIntegrityf(i, "ASSET line has an empty symbol")
			}
			current = &assetBlock{line: i, typ: typ, symbol: fields[2]}

		case prefixLot:
			if !headerSeen {
				return cash, nil, errIntegrityf(i, "expected HEADER first, got %q", line)
			}
			if current == nil {
				return cash, nil, errIntegrityf(i, "LOT without a preceding ASSET line")
			}
			if len(fields) != 4 {
				return cash, nil, errIntegrityf(i, "LOT line must have 4 fields, got %d in %q", len(fields), line)
			}
			day, err := date.Parse(fields[1])
			if err != nil {
				return cash, nil, errIntegrityf(i, "%v", err)
			}
			quantity, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return cash, nil, errIntegrityf(i, "invalid quantity %q", fields[2])
			}
			unitPrice, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return cash, nil, errIntegrityf(i, "invalid unit price %q", fields[3])
			}
			lot, err := newLot(day, unitPrice, quantity)
			if err != nil {
				return cash, nil, errIntegrityf(i, "%v", err)
			}
			current.lots = append(current.lots, lot)
			current.declared += quantity

		default:
			return cash, nil, errIntegrityf(i, "unknown line prefix %q", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return cash, nil, fmt.Errorf("cannot read portfolio data: %w", err)
	}
	if !headerSeen {
		return cash, nil, errIntegrityf(0, "missing HEADER line")
	}
	if err := flush(); err != nil {
		return cash, nil, err
	}
	return cash, blocks, nil
}

// replay rebuilds the portfolio by running every parsed lot through the
// normal buy path. The buy path debits each lot's purchase cost, so the
// portfolio is seeded with saved cash plus the total replay cost; after the
// replay, cash lands exactly on the saved value.
func replay(savedCash decimal.Decimal, blocks []assetBlock) (*Portfolio, error) {
	type step struct {
		line  int
		asset *Asset
		lot   Lot
	}
	var steps []step
	totalCost := M(0, "")

	for _, b := range blocks {
		if got := lots(b.lots).totalQuantity(); got != b.declared {
			return nil, errIntegrityf(b.line, "quantity mismatch for %s: declared %d, got %d", b.symbol, b.declared, got)
		}
		canonical, err := reconstructAsset(b)
		if err != nil {
			return nil, err
		}
		for _, lot := range b.lots {
			a := canonical.Copy()
			if err := a.SetMarketPrice(lot.UnitPrice.AsFloat()); err != nil {
				return nil, errIntegrityf(b.line, "asset %s: %v", b.symbol, err)
			}
			cost, err := a.PurchaseCost(lot.Quantity)
			if err != nil {
				return nil, errIntegrityf(b.line, "asset %s: %v", b.symbol, err)
			}
			totalCost = totalCost.Add(cost)
			steps = append(steps, step{line: b.line, asset: a, lot: lot})
		}
	}

	p := &Portfolio{
		cash:     M(savedCash, DefaultCurrency).Add(totalCost),
		currency: DefaultCurrency,
		holdings: make(map[string]*holding),
		orders:   newOrderQueue(),
	}
	for _, s := range steps {
		if err := p.AddAsset(s.asset, s.lot.Quantity, s.lot.Date); err != nil {
			return nil, errIntegrityf(s.line, "cannot replay lot for %s: %v", s.asset.Symbol(), err)
		}
	}
	return p, nil
}

// reconstructAsset builds the canonical asset of a block at the first lot's
// unit price. The wire format does not persist a currency spread, so a
// reconstructed currency gets a synthesized one: 1% of the price, or 0.1% if
// that would reach the price.
func reconstructAsset(b assetBlock) (*Asset, error) {
	price := b.lots[0].UnitPrice.AsFloat()
	var (
		asset *Asset
		err   error
	)
	switch b.typ {
	case Share:
		asset, err = NewShare(b.symbol, b.symbol, price)
	case Commodity:
		asset, err = NewCommodity(b.symbol, b.symbol, price)
	case Currency:
		spread := price * 0.01
		if spread >= price {
			spread = price * 0.001
		}
		asset, err = NewCurrency(b.symbol, b.symbol, price, spread)
	default:
		return nil, errIntegrityf(b.line, "unsupported asset type: %v", b.typ)
	}
	if err != nil {
		return nil, errIntegrityf(b.line, "cannot reconstruct asset %s: %v", b.symbol, err)
	}
	return asset, nil
}
