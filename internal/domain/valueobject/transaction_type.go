package valueobject

import "fmt"

// TransactionType indicates the direction of a bank transaction.
type TransactionType string

const (
	// TransactionCredit is money in (income, deposits, refunds).
	TransactionCredit TransactionType = "credit"
	// TransactionDebit is money out (purchases, withdrawals, payments).
	TransactionDebit TransactionType = "debit"
)

// NewTransactionType parses a transaction type string.
func NewTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionCredit, TransactionDebit:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
}

// String returns the type as a string.
func (t TransactionType) String() string {
	return string(t)
}
