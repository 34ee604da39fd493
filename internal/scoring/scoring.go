// Package scoring wraps the external prompt-based scoring collaborator. The
// collaborator is treated as opaque, possibly slow and possibly failing:
// every call carries an explicit timeout and failures are reported with a
// distinguishable kind so callers can surface "analysis unavailable" without
// mutating any workflow state.
package scoring

import (
	"context"
	"errors"
)

// ApplicantStatus is the categorical outcome of application scoring. The
// string values are part of the collaborator's response contract.
type ApplicantStatus string

const (
	StatusPremium    ApplicantStatus = "Premium"
	StatusApto       ApplicantStatus = "Apto"
	StatusDescartado ApplicantStatus = "Descartado"
)

// ErrUnavailable marks transport-level failures: the collaborator could not
// be reached, timed out, or answered with a non-success status.
var ErrUnavailable = errors.New("scoring collaborator unavailable")

// ErrBadOutput marks malformed or out-of-contract collaborator responses.
var ErrBadOutput = errors.New("scoring collaborator returned malformed output")

// ApplicationAnswers is the flat string/boolean payload of a recruiting
// application form submission.
type ApplicationAnswers struct {
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	Smartphone       bool   `json:"smartphone"`
	DriverLicense    bool   `json:"driverLicense"`
	OwnVehicle       bool   `json:"ownVehicle"`
	SalesExperience  bool   `json:"salesExperience"`
	FullAvailability bool   `json:"fullAvailability"`
	Motivation       string `json:"motivation"`
}

// ApplicationScore is the collaborator's assessment of an application.
type ApplicationScore struct {
	Score            int             `json:"score"`
	Status           ApplicantStatus `json:"status"`
	Reasoning        string          `json:"reasoning"`
	SemanticAnalysis string          `json:"semanticAnalysis"`
}

// LeadQualification is the BANT-style assessment of a lead produced from a
// free-text details/conversation dump.
type LeadQualification struct {
	Budget                int    `json:"budget"`
	Authority             int    `json:"authority"`
	Need                  int    `json:"need"`
	Timing                int    `json:"timing"`
	TotalScore            int    `json:"totalScore"`
	LeadStatus            string `json:"leadStatus"`
	QualificationDecision string `json:"qualificationDecision"`
	SalesRecommendation   string `json:"salesRecommendation"`
}

// Collaborator is the outward-facing scoring contract. Both calls are
// synchronous; no retries are attempted since the model's output is not
// deterministic.
type Collaborator interface {
	ScoreApplication(ctx context.Context, answers ApplicationAnswers) (*ApplicationScore, error)
	QualifyLead(ctx context.Context, leadDetails, conversationHistory string) (*LeadQualification, error)
}
