package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/config"
)

// Client calls the scoring collaborator over HTTP JSON.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a collaborator client with the configured timeout.
func NewClient(cfg config.ScoringConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// qualificationRequest carries the two JSON-stringified blobs the
// collaborator expects for lead qualification.
type qualificationRequest struct {
	LeadDetails         string `json:"leadDetails"`
	ConversationHistory string `json:"conversationHistory"`
}

// ScoreApplication submits application answers and returns the assessment
// with the local disqualification rules applied on top.
func (c *Client) ScoreApplication(ctx context.Context, answers ApplicationAnswers) (*ApplicationScore, error) {
	var score ApplicationScore
	if err := c.post(ctx, "/v1/score/application", answers, &score); err != nil {
		return nil, err
	}
	if !ValidApplicationScore(score) {
		return nil, fmt.Errorf("%w: score=%d status=%q", ErrBadOutput, score.Score, score.Status)
	}
	score = ApplyApplicationRules(answers, score)
	return &score, nil
}

// QualifyLead submits a lead details dump plus conversation history and
// returns the BANT qualification.
func (c *Client) QualifyLead(ctx context.Context, leadDetails, conversationHistory string) (*LeadQualification, error) {
	req := qualificationRequest{
		LeadDetails:         leadDetails,
		ConversationHistory: conversationHistory,
	}
	var qualification LeadQualification
	if err := c.post(ctx, "/v1/score/qualification", req, &qualification); err != nil {
		return nil, err
	}
	if !ValidQualification(qualification) {
		return nil, fmt.Errorf("%w: total=%d status=%q", ErrBadOutput, qualification.TotalScore, qualification.LeadStatus)
	}
	return &qualification, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: no base URL configured", ErrUnavailable)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrBadOutput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("scoring collaborator call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("scoring collaborator returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrBadOutput, err)
	}
	return nil
}
