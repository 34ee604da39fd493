package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// StageBatchRepository applies a computed stage-change plan as one
// all-or-nothing transaction. Any failure rolls back every write; no reader
// ever observes a lead in Won with its vehicle still Active, or a stage
// update without the matching appointment sweep.
type StageBatchRepository interface {
	ApplyStageChange(ctx context.Context, plan *domain.StageChangePlan) error
}

type stageBatchRepository struct {
	pool *pgxpool.Pool
}

// NewStageBatchRepository instantiates repository.
func NewStageBatchRepository(pool *pgxpool.Pool) StageBatchRepository {
	return &stageBatchRepository{pool: pool}
}

func (r *stageBatchRepository) ApplyStageChange(ctx context.Context, plan *domain.StageChangePlan) error {
	if plan.Empty() {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const leadQuery = `
        UPDATE leads SET stage=$1, last_activity=$2,
            broker_commission=COALESCE($3, broker_commission)
        WHERE id=$4`
	cmd, err := tx.Exec(ctx, leadQuery, plan.NewStage, plan.LastActivity, plan.BrokerCommission, plan.LeadID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if sale := plan.VehicleSale; sale != nil {
		const vehicleQuery = `
            UPDATE inventory SET status=$1, sold_by=$2, sold_at=$3, updated_at=NOW()
            WHERE id=$4`
		if _, err := tx.Exec(ctx, vehicleQuery, domain.VehicleStatusSold, sale.SoldBy, sale.SoldAt, sale.VehicleID); err != nil {
			return err
		}
	}

	const appointmentQuery = `UPDATE appointments SET lead_stage=$1, updated_at=NOW() WHERE lead_id=$2`
	if _, err := tx.Exec(ctx, appointmentQuery, plan.NewStage, plan.LeadID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
