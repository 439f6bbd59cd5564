package service

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// ErrNoTransactions is returned by AverageDailyBalance when called with an
// empty transaction list. The decision engine short-circuits empty histories
// before the factor calculators run, so this never surfaces to API callers.
var ErrNoTransactions = errors.New("cannot calculate average daily balance with no transactions")

// balanceWindowDays is the fixed calendar window the balance factor is
// averaged over, anchored at the earliest transaction date.
const balanceWindowDays = 90

// neutralConsistency is used whenever there is too little income data to
// measure regularity.
const neutralConsistency = 0.5

// RiskFactors are the raw signals derived from a transaction history before
// normalization. Produced once per evaluation and never mutated.
type RiskFactors struct {
	AvgDailyBalance   decimal.Decimal
	IncomeRatio       valueobject.Ratio
	NSFCount          int
	IncomeConsistency float64
}

// RiskFactorCalculator derives raw risk signals from a 90-day transaction
// history. All methods are pure: no I/O, no clock reads, no shared state.
type RiskFactorCalculator struct{}

// NewRiskFactorCalculator returns a new calculator instance.
func NewRiskFactorCalculator() *RiskFactorCalculator {
	return &RiskFactorCalculator{}
}

// Calculate derives all four factors from the transaction list. It must not
// be called with an empty list; see ErrNoTransactions.
func (c *RiskFactorCalculator) Calculate(txns []model.Transaction) (RiskFactors, error) {
	adb, err := c.AverageDailyBalance(txns)
	if err != nil {
		return RiskFactors{}, err
	}

	return RiskFactors{
		AvgDailyBalance:   adb,
		IncomeRatio:       c.IncomeSpendRatio(txns),
		NSFCount:          c.NSFCount(txns),
		IncomeConsistency: c.IncomeConsistency(txns),
	}, nil
}

// AverageDailyBalance computes the mean end-of-day balance over a fixed
// 90-day window anchored at the earliest transaction date.
//
// The last transaction of each day sets that day's closing balance; days
// without transactions carry forward the most recent known balance (zero
// before the first one). The result is in major currency units.
func (c *RiskFactorCalculator) AverageDailyBalance(txns []model.Transaction) (decimal.Decimal, error) {
	if len(txns) == 0 {
		return decimal.Decimal{}, ErrNoTransactions
	}

	dailyBalances := make(map[time.Time]int64)
	var start time.Time
	for _, txn := range model.SortedByDate(txns) {
		day := txn.Day()
		dailyBalances[day] = txn.BalanceCents
		if start.IsZero() || day.Before(start) {
			start = day
		}
	}

	var totalCents int64
	var lastBalance int64
	for i := 0; i < balanceWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		if bal, ok := dailyBalances[day]; ok {
			lastBalance = bal
		}
		totalCents += lastBalance
	}

	// Cents summed over 90 days, converted to major units in one division.
	return decimal.NewFromInt(totalCents).Div(decimal.NewFromInt(balanceWindowDays * 100)), nil
}

// IncomeSpendRatio computes monthly income divided by monthly spending,
// approximating the 90-day window as three months.
//
// With no spending the ratio is the unbounded sentinel when any income
// exists, otherwise neutral 1.0. An empty list is also neutral 1.0.
func (c *RiskFactorCalculator) IncomeSpendRatio(txns []model.Transaction) valueobject.Ratio {
	if len(txns) == 0 {
		return valueobject.NeutralRatio()
	}

	var totalCredits, totalDebits int64
	for _, txn := range txns {
		switch {
		case txn.IsCredit():
			totalCredits += txn.AmountCents
		case txn.IsDebit():
			totalDebits += txn.AmountCents
		}
	}
	if totalDebits < 0 {
		totalDebits = -totalDebits
	}

	if totalDebits == 0 {
		if totalCredits > 0 {
			return valueobject.UnboundedRatio()
		}
		return valueobject.NeutralRatio()
	}

	three := decimal.NewFromInt(3)
	monthlyIncome := decimal.NewFromInt(totalCredits).Div(three)
	monthlySpending := decimal.NewFromInt(totalDebits).Div(three)

	return valueobject.FiniteRatio(monthlyIncome.Div(monthlySpending))
}

// NSFCount counts non-sufficient-funds events in chronological order.
//
// A transaction counts if it is explicitly flagged, or if it is a debit
// whose resulting balance is negative while the preceding balance was
// non-negative. Only the crossing into negative territory counts; further
// debits while already negative do not. A transaction matching both
// conditions counts once.
func (c *RiskFactorCalculator) NSFCount(txns []model.Transaction) int {
	if len(txns) == 0 {
		return 0
	}

	count := 0
	var prevBalance int64
	for _, txn := range model.SortedByDate(txns) {
		if txn.NSF {
			count++
		} else if txn.IsDebit() && txn.BalanceCents < 0 && prevBalance >= 0 {
			count++
		}
		prevBalance = txn.BalanceCents
	}

	return count
}

// IncomeConsistency measures the regularity of income on a 0-1 scale, where
// 1.0 is perfectly regular. It groups credit amounts by ISO calendar week
// and converts the coefficient of variation of the weekly sums.
//
// Fewer than 3 credits, fewer than 4 distinct weeks, or a non-positive mean
// all yield the neutral 0.5: not enough signal to distinguish a gig worker
// from a salaried one.
func (c *RiskFactorCalculator) IncomeConsistency(txns []model.Transaction) float64 {
	type isoWeek struct {
		year int
		week int
	}

	credits := 0
	weeklyIncome := make(map[isoWeek]int64)
	for _, txn := range txns {
		if !txn.IsCredit() {
			continue
		}
		credits++
		year, week := txn.Day().ISOWeek()
		weeklyIncome[isoWeek{year, week}] += txn.AmountCents
	}

	if credits < 3 {
		return neutralConsistency
	}
	if len(weeklyIncome) < 4 {
		return neutralConsistency
	}

	var sum float64
	for _, v := range weeklyIncome {
		sum += float64(v)
	}
	mean := sum / float64(len(weeklyIncome))
	if mean <= 0 {
		return neutralConsistency
	}

	var variance float64
	for _, v := range weeklyIncome {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(weeklyIncome))

	cv := math.Sqrt(variance) / mean

	consistency := 1.0 - cv
	if consistency < 0 {
		return 0
	}
	if consistency > 1 {
		return 1
	}
	return consistency
}
