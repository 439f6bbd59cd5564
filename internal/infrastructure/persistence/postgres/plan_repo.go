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
	pgshared "github.com/geraldpay/bnpl-engine/pkg/postgres"
)

// PlanRepository is the pgx-backed implementation of port.PlanRepository.
// A plan and its installments are written in one transaction.
type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

func (r *PlanRepository) Save(ctx context.Context, p model.Plan) error {
	return pgshared.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const planQ = `
			INSERT INTO bnpl_plans (id, user_id, decision_id, total_cents, created_at)
			VALUES ($1, $2, $3, $4, $5)`

		if _, err := tx.Exec(ctx, planQ, p.ID, p.UserID, p.DecisionID, p.TotalCents, p.CreatedAt); err != nil {
			return fmt.Errorf("inserting plan: %w", err)
		}

		const instQ = `
			INSERT INTO bnpl_installments (id, plan_id, due_date, amount_cents, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for _, inst := range p.Installments {
			if _, err := tx.Exec(ctx, instQ,
				inst.ID, inst.PlanID, inst.DueDate, inst.AmountCents, inst.Status, inst.CreatedAt,
			); err != nil {
				return fmt.Errorf("inserting installment: %w", err)
			}
		}
		return nil
	})
}

func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Plan, error) {
	const q = `
		SELECT id, user_id, decision_id, total_cents, created_at
		FROM bnpl_plans
		WHERE id = $1`

	var p model.Plan
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.UserID, &p.DecisionID, &p.TotalCents, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Plan{}, port.ErrPlanNotFound
		}
		return model.Plan{}, fmt.Errorf("querying plan: %w", err)
	}

	p.Installments, err = r.loadInstallments(ctx, p.ID)
	if err != nil {
		return model.Plan{}, err
	}
	return p, nil
}

func (r *PlanRepository) FindByUserID(ctx context.Context, userID string) ([]model.Plan, error) {
	const q = `
		SELECT id, user_id, decision_id, total_cents, created_at
		FROM bnpl_plans
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.UserID, &p.DecisionID, &p.TotalCents, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		plans[i].Installments, err = r.loadInstallments(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *PlanRepository) loadInstallments(ctx context.Context, planID uuid.UUID) ([]model.Installment, error) {
	const q = `
		SELECT id, plan_id, due_date, amount_cents, status, created_at
		FROM bnpl_installments
		WHERE plan_id = $1
		ORDER BY due_date`

	rows, err := r.pool.Query(ctx, q, planID)
	if err != nil {
		return nil, fmt.Errorf("querying installments: %w", err)
	}
	defer rows.Close()

	var insts []model.Installment
	for rows.Next() {
		var inst model.Installment
		if err := rows.Scan(&inst.ID, &inst.PlanID, &inst.DueDate, &inst.AmountCents, &inst.Status, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning installment: %w", err)
		}
		insts = append(insts, inst)
	}
	return insts, rows.Err()
}
