package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

func newThinFilePolicy() *service.ThinFilePolicy {
	return service.NewThinFilePolicy(service.DefaultScoringConfig(), service.NewRiskFactorCalculator())
}

// richHistory spans 30 distinct days with one transaction each, enough to
// escape the thin-file classification.
func richHistory() []model.Transaction {
	txns := make([]model.Transaction, 0, 30)
	balance := int64(0)
	for i := 0; i < 30; i++ {
		balance += 10_000
		txns = append(txns, credit(i, 10_000, balance))
	}
	return txns
}

func TestThinFilePolicy_IsThinFile(t *testing.T) {
	policy := newThinFilePolicy()

	t.Run("too few transactions", func(t *testing.T) {
		assert.True(t, policy.IsThinFile(richHistory()[:9]))
	})

	t.Run("too few distinct days", func(t *testing.T) {
		// 12 transactions packed into 6 days.
		var txns []model.Transaction
		for i := 0; i < 12; i++ {
			txns = append(txns, credit(i/2, 10_000, 10_000))
		}
		assert.True(t, policy.IsThinFile(txns))
	})

	t.Run("sufficient history is not thin", func(t *testing.T) {
		assert.False(t, policy.IsThinFile(richHistory()))
	})
}

func TestThinFilePolicy_Evaluate(t *testing.T) {
	policy := newThinFilePolicy()

	t.Run("clean thin file gets the starter limit", func(t *testing.T) {
		outcome, thin := policy.Evaluate(richHistory()[:5])
		require.True(t, thin)
		assert.True(t, outcome.Approved)
		assert.Equal(t, int64(10_000), outcome.LimitCents)
	})

	t.Run("any NSF event declines a thin file", func(t *testing.T) {
		txns := []model.Transaction{
			credit(0, 10_000, 10_000),
			{Date: day(1), AmountCents: 15_000, BalanceCents: -5_000, Type: valueobject.TransactionDebit, NSF: true},
		}
		outcome, thin := policy.Evaluate(txns)
		require.True(t, thin)
		assert.False(t, outcome.Approved)
		assert.Zero(t, outcome.LimitCents)
	})

	t.Run("standard files are not handled", func(t *testing.T) {
		_, thin := policy.Evaluate(richHistory())
		assert.False(t, thin)
	})
}
