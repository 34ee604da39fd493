package scoring

// maxDisqualifiedScore is the ceiling applied to disqualified applications.
const maxDisqualifiedScore = 59

// ApplyApplicationRules enforces the hard disqualification rules on top of
// whatever the model produced. An applicant without a smartphone is always
// Descartado with a score below 60, regardless of other answers.
func ApplyApplicationRules(answers ApplicationAnswers, score ApplicationScore) ApplicationScore {
	score.Score = clampScore(score.Score)

	if !answers.Smartphone {
		score.Status = StatusDescartado
		if score.Score > maxDisqualifiedScore {
			score.Score = maxDisqualifiedScore
		}
	}
	return score
}

// ValidApplicationScore reports whether a collaborator response is within
// the documented contract.
func ValidApplicationScore(score ApplicationScore) bool {
	if score.Score < 0 || score.Score > 100 {
		return false
	}
	switch score.Status {
	case StatusPremium, StatusApto, StatusDescartado:
		return true
	}
	return false
}

// ValidQualification reports whether a BANT qualification response is within
// the documented contract.
func ValidQualification(q LeadQualification) bool {
	for _, component := range []int{q.Budget, q.Authority, q.Need, q.Timing} {
		if component < 0 || component > 100 {
			return false
		}
	}
	return q.TotalScore >= 0 && q.TotalScore <= 100 && q.LeadStatus != ""
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
