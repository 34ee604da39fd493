package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/events"
	"github.com/spec-kit/brokerage-crm/internal/scoring"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// NoteReader lists a lead's note history for the conversation dump.
type NoteReader interface {
	ListNotes(ctx context.Context, leadID string, ascending bool) ([]domain.NoteEntry, error)
}

// LeadReader fetches a lead with the actor's visibility enforced.
type LeadReader interface {
	GetLead(ctx context.Context, actor *domain.StaffMember, leadID string) (*domain.Lead, error)
}

// ScoringService fronts the external scoring collaborator. Collaborator
// failures surface as "analysis unavailable" and never mutate workflow
// state; only after a successful qualification is an AI Analysis note
// persisted, itself best-effort.
type ScoringService struct {
	collaborator scoring.Collaborator
	leadReader   LeadReader
	noteReader   NoteReader
	notes        NoteLogger
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	now          func() time.Time
}

// ScoringDependencies bundles collaborators for the scoring service.
type ScoringDependencies struct {
	Collaborator scoring.Collaborator
	LeadReader   LeadReader
	NoteReader   NoteReader
	Notes        NoteLogger
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewScoringService constructs the service.
func NewScoringService(deps ScoringDependencies) *ScoringService {
	return &ScoringService{
		collaborator: deps.Collaborator,
		leadReader:   deps.LeadReader,
		noteReader:   deps.NoteReader,
		notes:        deps.Notes,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		now:          time.Now,
	}
}

// ScoreApplication evaluates a recruiting application form submission.
func (s *ScoringService) ScoreApplication(ctx context.Context, actor *domain.StaffMember, answers scoring.ApplicationAnswers) (*scoring.ApplicationScore, error) {
	score, err := s.collaborator.ScoreApplication(ctx, answers)
	if err != nil {
		s.logger.Warn("application scoring failed", zap.Error(err))
		return nil, apperrors.NewAnalysisUnavailable(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventApplicationScored,
		Actor: events.Actor{StaffID: actor.ID, Name: actor.Name},
		Payload: events.ApplicationScoredPayload{
			Score:  score.Score,
			Status: string(score.Status),
		},
	})
	return score, nil
}

// QualifyLead runs the BANT qualification over a lead's details and note
// history. On success an AI Analysis note is appended to the lead.
func (s *ScoringService) QualifyLead(ctx context.Context, actor *domain.StaffMember, leadID string) (*scoring.LeadQualification, error) {
	lead, err := s.leadReader.GetLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteReader.ListNotes(ctx, lead.ID, true)
	if err != nil {
		return nil, err
	}

	leadDetails, conversation, err := marshalQualificationInput(lead, notes)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	qualification, err := s.collaborator.QualifyLead(ctx, leadDetails, conversation)
	if err != nil {
		s.logger.Warn("lead qualification failed", zap.String("lead_id", lead.ID), zap.Error(err))
		return nil, apperrors.NewAnalysisUnavailable(err)
	}

	content := fmt.Sprintf("Qualification: %s (score %d). %s",
		qualification.QualificationDecision, qualification.TotalScore, qualification.SalesRecommendation)
	if _, err := s.notes.AddNoteEntry(ctx, lead.ID, content, domain.NoteTypeAIAnalysis, actor.Name); err != nil {
		s.logger.Warn("qualification note append failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventLeadQualified,
		LeadID: lead.ID,
		Actor:  events.Actor{StaffID: actor.ID, Name: actor.Name},
		Payload: events.LeadQualifiedPayload{
			TotalScore: qualification.TotalScore,
			LeadStatus: qualification.LeadStatus,
		},
	})
	return qualification, nil
}

// marshalQualificationInput flattens lead state and note history into the
// two JSON-stringified blobs the collaborator expects.
func marshalQualificationInput(lead *domain.Lead, notes []domain.NoteEntry) (string, string, error) {
	details, err := json.Marshal(map[string]any{
		"name":                lead.Name,
		"phone":               lead.Phone,
		"email":               lead.Email,
		"source":              lead.Source,
		"stage":               lead.Stage,
		"ownerName":           lead.OwnerName,
		"interestedVehicleId": lead.InterestedVehicleID,
		"lastActivity":        lead.LastActivity,
		"createdAt":           lead.CreatedAt,
	})
	if err != nil {
		return "", "", err
	}

	entries := make([]map[string]any, 0, len(notes))
	for _, note := range notes {
		entries = append(entries, map[string]any{
			"author":  note.Author,
			"content": note.Content,
			"type":    note.Type,
			"date":    note.Date,
		})
	}
	conversation, err := json.Marshal(entries)
	if err != nil {
		return "", "", err
	}
	return string(details), string(conversation), nil
}

func (s *ScoringService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
