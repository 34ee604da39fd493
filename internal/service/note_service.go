package service

import (
	"context"
	"strings"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// NoteService appends entries to a lead's note history. Entries get a
// server timestamp on insert and the parent lead's lastActivity is touched
// afterwards; concurrent appends are independent inserts with no conflict
// detection.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService constructs the service.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// AddNoteEntry appends one entry to the lead's note history.
func (s *NoteService) AddNoteEntry(ctx context.Context, leadID, content string, noteType domain.NoteType, author string) (*domain.NoteEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	note := &domain.NoteEntry{
		LeadID:  leadID,
		Content: content,
		Author:  author,
		Type:    noteType,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, apperrors.MapError(err)
	}
	return note, nil
}

// ListNotes returns the note history ordered by date.
func (s *NoteService) ListNotes(ctx context.Context, leadID string, ascending bool) ([]domain.NoteEntry, error) {
	notes, err := s.notes.ListByLead(ctx, leadID, ascending)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notes, nil
}
