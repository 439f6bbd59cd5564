package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
)

// DecisionRepository is the pgx-backed implementation of
// port.DecisionRepository.
type DecisionRepository struct {
	pool *pgxpool.Pool
}

func NewDecisionRepository(pool *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{pool: pool}
}

func (r *DecisionRepository) Save(ctx context.Context, d model.Decision) error {
	const q = `
		INSERT INTO bnpl_decisions (
			id, user_id, approved, credit_limit_cents, requested_cents,
			granted_cents, plan_id, avg_daily_balance, income_ratio,
			nsf_count, risk_score, score_band, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, q,
		d.ID, d.UserID, d.Approved, d.CreditLimitCents, d.RequestedCents,
		d.GrantedCents, d.PlanID, d.Factors.AvgDailyBalance, d.Factors.IncomeRatio,
		d.Factors.NSFCount, d.Factors.RiskScore, d.Factors.ScoreBand, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

func (r *DecisionRepository) AttachPlan(ctx context.Context, decisionID, planID uuid.UUID) error {
	const q = `UPDATE bnpl_decisions SET plan_id = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, q, planID, decisionID)
	if err != nil {
		return fmt.Errorf("attaching plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrDecisionNotFound
	}
	return nil
}

func (r *DecisionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Decision, error) {
	const q = `
		SELECT id, user_id, approved, credit_limit_cents, requested_cents,
		       granted_cents, plan_id, avg_daily_balance, income_ratio,
		       nsf_count, risk_score, score_band, created_at
		FROM bnpl_decisions
		WHERE id = $1`

	d, err := scanDecision(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Decision{}, port.ErrDecisionNotFound
		}
		return model.Decision{}, fmt.Errorf("querying decision: %w", err)
	}
	return d, nil
}

func (r *DecisionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Decision, error) {
	const q = `
		SELECT id, user_id, approved, credit_limit_cents, requested_cents,
		       granted_cents, plan_id, avg_daily_balance, income_ratio,
		       nsf_count, risk_score, score_band, created_at
		FROM bnpl_decisions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []model.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func scanDecision(row pgx.Row) (model.Decision, error) {
	var d model.Decision
	err := row.Scan(
		&d.ID, &d.UserID, &d.Approved, &d.CreditLimitCents, &d.RequestedCents,
		&d.GrantedCents, &d.PlanID, &d.Factors.AvgDailyBalance, &d.Factors.IncomeRatio,
		&d.Factors.NSFCount, &d.Factors.RiskScore, &d.Factors.ScoreBand, &d.CreatedAt,
	)
	return d, err
}
