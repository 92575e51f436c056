// Package calc provides the pure derived-value calculators: trade P&L,
// aggregate statistics, and price-band projections. Everything here is
// stateless and safe to re-evaluate on every input change.
package calc

import "ict-journal/internal/models"

// PnL computes profit/loss and percentage return for a trade leg.
// It returns (nil, nil) when entry, exit, or quantity is absent.
//
// The percentage denominator is the entry notional; when that is zero
// the percentage is reported as 0 rather than failing, so a zero entry
// price never breaks a form re-render. Zero or negative quantity is
// accepted as ordinary arithmetic input.
func PnL(direction models.Direction, entry, exit, quantity *float64) (pnl, pnlPercent *float64) {
	if entry == nil || exit == nil || quantity == nil {
		return nil, nil
	}

	var p float64
	if direction == models.DirectionShort {
		p = (*entry - *exit) * *quantity
	} else {
		p = (*exit - *entry) * *quantity
	}

	notional := *entry * *quantity
	var pct float64
	if notional != 0 {
		pct = p / notional * 100
	}

	return &p, &pct
}
