package stockfolio

import "github.com/pkruk/stockfolio/date"

// Lot represents a single dated acquisition of an asset at a fixed unit
// price, the unit of FIFO cost-basis tracking. The unit price and date are
// fixed at creation; only the quantity decreases, on partial sales. Lots are
// never merged or reordered.
type Lot struct {
	Date      date.Date
	UnitPrice Money
	Quantity  int64
}

// newLot validates and creates a purchase lot.
func newLot(day date.Date, unitPrice float64, quantity int64) (Lot, error) {
	if day.IsZero() {
		return Lot{}, errValidationf("purchase date is missing")
	}
	if err := validPositivePrice("unit price", unitPrice); err != nil {
		return Lot{}, err
	}
	if err := validPositiveQuantity("quantity", quantity); err != nil {
		return Lot{}, err
	}
	return Lot{Date: day, UnitPrice: M(unitPrice, ""), Quantity: quantity}, nil
}

type lots []Lot

// totalQuantity sums the quantities of all lots.
func (l lots) totalQuantity() int64 {
	var total int64
	for _, lot := range l {
		total += lot.Quantity
	}
	return total
}

// sellFIFO consumes quantityToSell units from the oldest lots first and
// returns the remaining lots and the realized profit at salePrice. A
// partially consumed lot keeps its date and unit price and has its quantity
// decremented in place; exhausted lots are dropped; the order of the
// remaining lots is preserved. The caller checks that enough quantity is held.
func (l lots) sellFIFO(quantityToSell int64, salePrice Money) (remaining lots, profit Money) {
	for i, currentLot := range l {
		if quantityToSell == 0 {
			remaining = append(remaining, l[i:]...)
			break
		}

		if currentLot.Quantity > quantityToSell {
			// Partial sale from this lot.
			profit = profit.Add(salePrice.Sub(currentLot.UnitPrice).MulQty(quantityToSell))
			currentLot.Quantity -= quantityToSell
			remaining = append(remaining, currentLot)
			quantityToSell = 0
		} else {
			// Full sale of this lot.
			profit = profit.Add(salePrice.Sub(currentLot.UnitPrice).MulQty(currentLot.Quantity))
			quantityToSell -= currentLot.Quantity
		}
	}
	return remaining, profit
}
