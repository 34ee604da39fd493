package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.ScoringConfig{BaseURL: baseURL, TimeoutSeconds: 2}, zap.NewNop())
}

func TestScoreApplicationSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/score/application" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var answers ApplicationAnswers
		if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ApplicationScore{Score: 84, Status: StatusPremium, Reasoning: "strong profile"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	score, err := client.ScoreApplication(context.Background(), ApplicationAnswers{FullName: "Ana", Smartphone: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Score != 84 || score.Status != StatusPremium {
		t.Fatalf("unexpected score: %+v", score)
	}
}

func TestScoreApplicationAppliesLocalRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ApplicationScore{Score: 95, Status: StatusPremium})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	score, err := client.ScoreApplication(context.Background(), ApplicationAnswers{FullName: "Ana", Smartphone: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Status != StatusDescartado || score.Score > 59 {
		t.Fatalf("local disqualification rules not applied: %+v", score)
	}
}

func TestScoreApplicationMalformedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"score": 84, "status": "Unheard"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ScoreApplication(context.Background(), ApplicationAnswers{Smartphone: true})
	if !errors.Is(err, ErrBadOutput) {
		t.Fatalf("expected ErrBadOutput, got %v", err)
	}
}

func TestScoreApplicationServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ScoreApplication(context.Background(), ApplicationAnswers{Smartphone: true})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestScoreApplicationTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ScoreApplication(ctx, ApplicationAnswers{Smartphone: true})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestScoreApplicationNoBaseURL(t *testing.T) {
	client := newTestClient("")
	_, err := client.ScoreApplication(context.Background(), ApplicationAnswers{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestQualifyLeadSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/score/qualification" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			LeadDetails         string `json:"leadDetails"`
			ConversationHistory string `json:"conversationHistory"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.LeadDetails == "" || req.ConversationHistory == "" {
			t.Error("expected both blobs populated")
		}
		_ = json.NewEncoder(w).Encode(LeadQualification{
			Budget: 80, Authority: 60, Need: 90, Timing: 70,
			TotalScore: 75, LeadStatus: "Hot", QualificationDecision: "Pursue",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	qualification, err := client.QualifyLead(context.Background(), `{"name":"Dana"}`, `[{"content":"hi"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qualification.TotalScore != 75 || qualification.LeadStatus != "Hot" {
		t.Fatalf("unexpected qualification: %+v", qualification)
	}
}

func TestQualifyLeadOutOfContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(LeadQualification{Budget: 300, TotalScore: 75, LeadStatus: "Hot"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.QualifyLead(context.Background(), "{}", "[]")
	if !errors.Is(err, ErrBadOutput) {
		t.Fatalf("expected ErrBadOutput, got %v", err)
	}
}
