package dto

import "github.com/spec-kit/brokerage-crm/internal/scoring"

// ScoreApplicationRequest payload mirrors the recruiting application form.
type ScoreApplicationRequest struct {
	FullName         string `json:"full_name"`
	Phone            string `json:"phone"`
	City             string `json:"city"`
	Smartphone       bool   `json:"smartphone"`
	DriverLicense    bool   `json:"driver_license"`
	OwnVehicle       bool   `json:"own_vehicle"`
	SalesExperience  bool   `json:"sales_experience"`
	FullAvailability bool   `json:"full_availability"`
	Motivation       string `json:"motivation"`
}

// Answers converts the request to the collaborator payload.
func (r ScoreApplicationRequest) Answers() scoring.ApplicationAnswers {
	return scoring.ApplicationAnswers{
		FullName:         r.FullName,
		Phone:            r.Phone,
		City:             r.City,
		Smartphone:       r.Smartphone,
		DriverLicense:    r.DriverLicense,
		OwnVehicle:       r.OwnVehicle,
		SalesExperience:  r.SalesExperience,
		FullAvailability: r.FullAvailability,
		Motivation:       r.Motivation,
	}
}

// ApplicationScoreResponse reports an application assessment.
type ApplicationScoreResponse struct {
	Score            int                     `json:"score"`
	Status           scoring.ApplicantStatus `json:"status"`
	Reasoning        string                  `json:"reasoning"`
	SemanticAnalysis string                  `json:"semantic_analysis"`
}

// NewApplicationScoreResponse maps a collaborator score.
func NewApplicationScoreResponse(score *scoring.ApplicationScore) ApplicationScoreResponse {
	return ApplicationScoreResponse{
		Score:            score.Score,
		Status:           score.Status,
		Reasoning:        score.Reasoning,
		SemanticAnalysis: score.SemanticAnalysis,
	}
}

// QualificationResponse reports a BANT-style lead assessment.
type QualificationResponse struct {
	Budget                int    `json:"budget"`
	Authority             int    `json:"authority"`
	Need                  int    `json:"need"`
	Timing                int    `json:"timing"`
	TotalScore            int    `json:"total_score"`
	LeadStatus            string `json:"lead_status"`
	QualificationDecision string `json:"qualification_decision"`
	SalesRecommendation   string `json:"sales_recommendation"`
}

// NewQualificationResponse maps a collaborator qualification.
func NewQualificationResponse(q *scoring.LeadQualification) QualificationResponse {
	return QualificationResponse{
		Budget:                q.Budget,
		Authority:             q.Authority,
		Need:                  q.Need,
		Timing:                q.Timing,
		TotalScore:            q.TotalScore,
		LeadStatus:            q.LeadStatus,
		QualificationDecision: q.QualificationDecision,
		SalesRecommendation:   q.SalesRecommendation,
	}
}
