package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/YtxCash/YtxModel/internal/model"
)

// Balance is one record's contribution to a running balance under the
// sign convention: credit minus debit for credit-normal accounts,
// negated for debit-normal ones.
func Balance(rule bool, debit, credit decimal.Decimal) decimal.Decimal {
	diff := credit.Sub(debit)
	if rule {
		return diff
	}
	return diff.Neg()
}

// AccumulateSubtotal recomputes the running subtotals of a view's
// shadow list from index start onward and returns the final balance.
// The list order is the view's display order. This is the one helper
// that may be handed work for several views at once, so it serializes
// on the engine's mutex.
func (l *Ledger) AccumulateSubtotal(shadows []*model.TransShadow, start int, rule bool) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	if start < 0 || start >= len(shadows) {
		return decimal.Decimal{}
	}

	var previous decimal.Decimal
	if start > 0 {
		previous = shadows[start-1].Subtotal
	}

	for _, shadow := range shadows[start:] {
		previous = previous.Add(Balance(rule, shadow.Debit(), shadow.Credit()))
		shadow.Subtotal = previous
	}

	return previous
}
