package scoring

import "testing"

func TestApplyApplicationRulesNoSmartphoneDisqualifies(t *testing.T) {
	answers := ApplicationAnswers{FullName: "Ana", Smartphone: false, SalesExperience: true}
	score := ApplicationScore{Score: 92, Status: StatusPremium}

	result := ApplyApplicationRules(answers, score)
	if result.Status != StatusDescartado {
		t.Fatalf("expected Descartado, got %s", result.Status)
	}
	if result.Score > 59 {
		t.Fatalf("disqualified score must be at most 59, got %d", result.Score)
	}
}

func TestApplyApplicationRulesKeepsLowDisqualifiedScore(t *testing.T) {
	answers := ApplicationAnswers{Smartphone: false}
	result := ApplyApplicationRules(answers, ApplicationScore{Score: 31, Status: StatusApto})
	if result.Score != 31 {
		t.Fatalf("expected score 31 unchanged, got %d", result.Score)
	}
	if result.Status != StatusDescartado {
		t.Fatalf("expected Descartado, got %s", result.Status)
	}
}

func TestApplyApplicationRulesPassesQualifiedThrough(t *testing.T) {
	answers := ApplicationAnswers{Smartphone: true}
	result := ApplyApplicationRules(answers, ApplicationScore{Score: 88, Status: StatusPremium})
	if result.Score != 88 || result.Status != StatusPremium {
		t.Fatalf("qualified applicant must pass through, got %+v", result)
	}
}

func TestApplyApplicationRulesClampsOutOfRangeScore(t *testing.T) {
	answers := ApplicationAnswers{Smartphone: true}
	if got := ApplyApplicationRules(answers, ApplicationScore{Score: 140, Status: StatusApto}); got.Score != 100 {
		t.Fatalf("expected clamp to 100, got %d", got.Score)
	}
	if got := ApplyApplicationRules(answers, ApplicationScore{Score: -5, Status: StatusApto}); got.Score != 0 {
		t.Fatalf("expected clamp to 0, got %d", got.Score)
	}
}

func TestValidApplicationScore(t *testing.T) {
	if !ValidApplicationScore(ApplicationScore{Score: 70, Status: StatusApto}) {
		t.Fatal("expected valid score to pass")
	}
	if ValidApplicationScore(ApplicationScore{Score: 70, Status: "Maybe"}) {
		t.Fatal("unknown status must fail validation")
	}
	if ValidApplicationScore(ApplicationScore{Score: 101, Status: StatusApto}) {
		t.Fatal("out-of-range score must fail validation")
	}
}

func TestValidQualification(t *testing.T) {
	good := LeadQualification{Budget: 80, Authority: 70, Need: 90, Timing: 60, TotalScore: 75, LeadStatus: "Hot"}
	if !ValidQualification(good) {
		t.Fatal("expected valid qualification to pass")
	}
	bad := good
	bad.Authority = 130
	if ValidQualification(bad) {
		t.Fatal("out-of-range component must fail validation")
	}
	bad = good
	bad.LeadStatus = ""
	if ValidQualification(bad) {
		t.Fatal("empty status must fail validation")
	}
}
