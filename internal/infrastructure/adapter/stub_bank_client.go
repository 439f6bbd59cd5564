package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
)

// StubBankClient generates a deterministic synthetic history per user,
// seeded from a hash of the user id. The same user always gets the same
// transactions, so decisions stay reproducible across runs.
type StubBankClient struct {
	now func() time.Time
}

func NewStubBankClient() *StubBankClient {
	return &StubBankClient{now: time.Now}
}

func (c *StubBankClient) GetTransactions(_ context.Context, userID string) ([]model.Transaction, error) {
	sum := sha256.Sum256([]byte(userID))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	rng := rand.New(rand.NewSource(seed))

	// Profile knobs derived from the seed: payroll size, spend appetite,
	// and overdraft propensity.
	payroll := int64(150_000 + rng.Intn(200_000))
	spendRate := 0.5 + rng.Float64()*0.7
	nsfProne := rng.Float64() < 0.2

	today := c.now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -90)

	var txns []model.Transaction
	balance := int64(50_000 + rng.Intn(100_000))

	for day := 0; day < 90; day++ {
		date := start.AddDate(0, 0, day)

		// Biweekly payroll credit.
		if day%14 == 0 {
			balance += payroll
			txns = append(txns, model.Transaction{
				Date:         date,
				AmountCents:  payroll,
				BalanceCents: balance,
				Type:         valueobject.TransactionCredit,
				Description:  "payroll",
			})
		}

		// Zero to two debits per day.
		for i := 0; i < rng.Intn(3); i++ {
			amount := int64(float64(payroll) / 14 * spendRate * (0.5 + rng.Float64()))
			balance -= amount
			nsf := nsfProne && balance < 0 && rng.Float64() < 0.5
			txns = append(txns, model.Transaction{
				Date:         date,
				AmountCents:  amount,
				BalanceCents: balance,
				Type:         valueobject.TransactionDebit,
				NSF:          nsf,
				Description:  "card purchase",
			})
		}
	}

	return txns, nil
}
