package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// LeadFilter captures pipeline listing parameters. OwnerIDs carries the
// visibility scope already resolved by the service layer.
type LeadFilter struct {
	OwnerIDs    []string
	Stages      []domain.LeadStage
	Sources     []domain.LeadSource
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Lead, error)
	ListWithFilter(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	UpdateOwner(ctx context.Context, leadID, ownerID, ownerName string) error
	TouchLastActivity(ctx context.Context, leadID string, at time.Time) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (external_key, name, phone, email, source, stage, owner_id, owner_name, interested_vehicle_id, last_activity)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
        RETURNING id, last_activity, created_at`
	return r.pool.QueryRow(ctx, query,
		lead.ExternalKey,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Source,
		lead.Stage,
		lead.OwnerID,
		lead.OwnerName,
		lead.InterestedVehicleID,
	).Scan(&lead.ID, &lead.LastActivity, &lead.CreatedAt)
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET name=$1, phone=$2, email=$3, source=$4, stage=$5, owner_id=$6, owner_name=$7,
            interested_vehicle_id=$8, broker_commission=$9, last_activity=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Source,
		lead.Stage,
		lead.OwnerID,
		lead.OwnerName,
		lead.InterestedVehicleID,
		lead.BrokerCommission,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT id, external_key, name, phone, email, source, stage, owner_id, owner_name,
               interested_vehicle_id, broker_commission, last_activity, created_at
        FROM leads WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *leadRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Lead, error) {
	const query = `
        SELECT id, external_key, name, phone, email, source, stage, owner_id, owner_name,
               interested_vehicle_id, broker_commission, last_activity, created_at
        FROM leads WHERE external_key=$1`
	return r.fetchSingle(ctx, query, key)
}

func (r *leadRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&lead.ID,
		&lead.ExternalKey,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Source,
		&lead.Stage,
		&lead.OwnerID,
		&lead.OwnerName,
		&lead.InterestedVehicleID,
		&lead.BrokerCommission,
		&lead.LastActivity,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) ListWithFilter(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	base := `SELECT id, external_key, name, phone, email, source, stage, owner_id, owner_name,
                    interested_vehicle_id, broker_commission, last_activity, created_at
             FROM leads`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.OwnerIDs) > 0 {
		placeholders := make([]string, len(filter.OwnerIDs))
		for i, owner := range filter.OwnerIDs {
			args = append(args, owner)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("owner_id IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Stages) > 0 {
		placeholders := make([]string, len(filter.Stages))
		for i, stage := range filter.Stages {
			args = append(args, stage)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("stage IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Sources) > 0 {
		placeholders := make([]string, len(filter.Sources))
		for i, source := range filter.Sources {
			args = append(args, source)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("source IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(email) LIKE %s OR phone LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY last_activity DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *leadRepository) UpdateOwner(ctx context.Context, leadID, ownerID, ownerName string) error {
	const query = `UPDATE leads SET owner_id=$1, owner_name=$2, last_activity=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, ownerID, ownerName, leadID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) TouchLastActivity(ctx context.Context, leadID string, at time.Time) error {
	const query = `UPDATE leads SET last_activity=$1 WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, at, leadID)
	return err
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.ExternalKey,
			&lead.Name,
			&lead.Phone,
			&lead.Email,
			&lead.Source,
			&lead.Stage,
			&lead.OwnerID,
			&lead.OwnerName,
			&lead.InterestedVehicleID,
			&lead.BrokerCommission,
			&lead.LastActivity,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
