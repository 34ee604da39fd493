package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// NoteRepository stores the append-only note history attached to leads.
// Entries are inserted with a server timestamp and never updated or deleted
// here. After each insert the parent lead's last_activity is touched;
// concurrent appends are independent inserts, last-write-wins on
// last_activity.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.NoteEntry) error
	ListByLead(ctx context.Context, leadID string, ascending bool) ([]domain.NoteEntry, error)
}

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository builds repository.
func NewNoteRepository(pool *pgxpool.Pool) NoteRepository {
	return &noteRepository{pool: pool}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.NoteEntry) error {
	const query = `
        INSERT INTO lead_notes (lead_id, content, author, note_type)
        VALUES ($1,$2,$3,$4)
        RETURNING id, note_date`
	if err := r.pool.QueryRow(ctx, query,
		note.LeadID,
		note.Content,
		note.Author,
		note.Type,
	).Scan(&note.ID, &note.Date); err != nil {
		return err
	}

	const touch = `UPDATE leads SET last_activity=$1 WHERE id=$2`
	_, err := r.pool.Exec(ctx, touch, note.Date, note.LeadID)
	return err
}

func (r *noteRepository) ListByLead(ctx context.Context, leadID string, ascending bool) ([]domain.NoteEntry, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`
        SELECT id, lead_id, content, author, note_type, note_date
        FROM lead_notes WHERE lead_id=$1 ORDER BY note_date %s`, direction)

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.NoteEntry
	for rows.Next() {
		var note domain.NoteEntry
		if err := rows.Scan(
			&note.ID,
			&note.LeadID,
			&note.Content,
			&note.Author,
			&note.Type,
			&note.Date,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
