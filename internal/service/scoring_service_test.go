package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/scoring"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

type fakeCollaborator struct {
	scoreFn   func(ctx context.Context, answers scoring.ApplicationAnswers) (*scoring.ApplicationScore, error)
	qualifyFn func(ctx context.Context, leadDetails, conversationHistory string) (*scoring.LeadQualification, error)
}

func (f *fakeCollaborator) ScoreApplication(ctx context.Context, answers scoring.ApplicationAnswers) (*scoring.ApplicationScore, error) {
	return f.scoreFn(ctx, answers)
}

func (f *fakeCollaborator) QualifyLead(ctx context.Context, leadDetails, conversationHistory string) (*scoring.LeadQualification, error) {
	return f.qualifyFn(ctx, leadDetails, conversationHistory)
}

type fakeLeadReader struct {
	lead *domain.Lead
}

func (f *fakeLeadReader) GetLead(ctx context.Context, actor *domain.StaffMember, leadID string) (*domain.Lead, error) {
	return f.lead, nil
}

type fakeNoteReader struct {
	notes []domain.NoteEntry
}

func (f *fakeNoteReader) ListNotes(ctx context.Context, leadID string, ascending bool) ([]domain.NoteEntry, error) {
	return f.notes, nil
}

func TestScoreApplicationUnavailableCollaborator(t *testing.T) {
	svc := NewScoringService(ScoringDependencies{
		Collaborator: &fakeCollaborator{scoreFn: func(ctx context.Context, answers scoring.ApplicationAnswers) (*scoring.ApplicationScore, error) {
			return nil, scoring.ErrUnavailable
		}},
		Logger: zap.NewNop(),
	})

	actor := &domain.StaffMember{ID: "U1"}
	_, err := svc.ScoreApplication(context.Background(), actor, scoring.ApplicationAnswers{})
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.ToDomainError(err).Code != "ANALYSIS_UNAVAILABLE" {
		t.Fatalf("expected ANALYSIS_UNAVAILABLE, got %s", apperrors.ToDomainError(err).Code)
	}
}

func TestQualifyLeadAppendsAnalysisNote(t *testing.T) {
	lead := &domain.Lead{ID: "L1", Name: "Dana", Stage: domain.StageQualified, OwnerName: "Ann"}
	notes := &fakeNoteLogger{}
	var gotDetails, gotConversation string

	svc := NewScoringService(ScoringDependencies{
		Collaborator: &fakeCollaborator{qualifyFn: func(ctx context.Context, leadDetails, conversationHistory string) (*scoring.LeadQualification, error) {
			gotDetails = leadDetails
			gotConversation = conversationHistory
			return &scoring.LeadQualification{
				Budget: 70, Authority: 60, Need: 85, Timing: 65,
				TotalScore: 70, LeadStatus: "Warm",
				QualificationDecision: "Pursue", SalesRecommendation: "Offer a test drive.",
			}, nil
		}},
		LeadReader: &fakeLeadReader{lead: lead},
		NoteReader: &fakeNoteReader{notes: []domain.NoteEntry{
			{Author: "Ann", Content: "Called, interested in the sedan.", Type: domain.NoteTypeManual},
		}},
		Notes:  notes,
		Logger: zap.NewNop(),
	})

	actor := &domain.StaffMember{ID: "U1", Name: "Uma"}
	qualification, err := svc.QualifyLead(context.Background(), actor, "L1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qualification.TotalScore != 70 {
		t.Fatalf("unexpected total score %d", qualification.TotalScore)
	}

	var details map[string]any
	if err := json.Unmarshal([]byte(gotDetails), &details); err != nil {
		t.Fatalf("lead details must be a JSON blob: %v", err)
	}
	if details["name"] != "Dana" {
		t.Fatalf("lead details missing name, got %v", details)
	}
	var conversation []map[string]any
	if err := json.Unmarshal([]byte(gotConversation), &conversation); err != nil {
		t.Fatalf("conversation history must be a JSON blob: %v", err)
	}
	if len(conversation) != 1 {
		t.Fatalf("expected one conversation entry, got %d", len(conversation))
	}

	if len(notes.entries) != 1 {
		t.Fatalf("expected one AI Analysis note, got %d", len(notes.entries))
	}
	note := notes.entries[0]
	if note.Type != domain.NoteTypeAIAnalysis {
		t.Fatalf("expected AI Analysis note, got %s", note.Type)
	}
	if !strings.Contains(note.Content, "Pursue") || !strings.Contains(note.Content, "70") {
		t.Fatalf("note must carry decision and score, got %q", note.Content)
	}
}

func TestQualifyLeadUnavailableLeavesNoNote(t *testing.T) {
	notes := &fakeNoteLogger{}
	svc := NewScoringService(ScoringDependencies{
		Collaborator: &fakeCollaborator{qualifyFn: func(ctx context.Context, leadDetails, conversationHistory string) (*scoring.LeadQualification, error) {
			return nil, scoring.ErrBadOutput
		}},
		LeadReader: &fakeLeadReader{lead: &domain.Lead{ID: "L1"}},
		NoteReader: &fakeNoteReader{},
		Notes:      notes,
		Logger:     zap.NewNop(),
	})

	actor := &domain.StaffMember{ID: "U1"}
	_, err := svc.QualifyLead(context.Background(), actor, "L1")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(notes.entries) != 0 {
		t.Fatal("failed qualification must not append a note")
	}
}
