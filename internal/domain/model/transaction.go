package model

import (
	"sort"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// Transaction is a single bank transaction from a user's 90-day history.
// Amounts are integer minor currency units (cents); BalanceCents is the
// account balance after the transaction posted. Transactions are owned by
// the caller and read-only to the engine.
type Transaction struct {
	Date         time.Time
	AmountCents  int64
	BalanceCents int64
	Type         valueobject.TransactionType
	NSF          bool
	Description  string
}

// IsCredit reports whether the transaction is money in.
func (t Transaction) IsCredit() bool {
	return t.Type == valueobject.TransactionCredit
}

// IsDebit reports whether the transaction is money out.
func (t Transaction) IsDebit() bool {
	return t.Type == valueobject.TransactionDebit
}

// Day returns the calendar date of the transaction, normalized to UTC midnight.
func (t Transaction) Day() time.Time {
	y, m, d := t.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortedByDate returns a copy of txns in chronological order. The sort is
// stable so same-day transactions keep their input order, which matters for
// the last-transaction-wins end-of-day balance rule.
func SortedByDate(txns []Transaction) []Transaction {
	out := make([]Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
