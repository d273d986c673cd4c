package wizard

import (
	"fmt"
	"math"
)

// AssessmentQuestions is the fixed yes/no quiz shown to babysitting and
// postnatal applicants.
var AssessmentQuestions = []string{
	"Do you have prior caregiving experience?",
	"Can you handle emergency situations?",
	"Are you comfortable with elderly care?",
}

// AssessmentPassScore is the minimum score (inclusive) to pass.
const AssessmentPassScore = 50

type AssessmentResult struct {
	Score  int  `json:"score"`
	Passed bool `json:"passed"`
}

// ScoreAssessment turns yes/no answers into a 0–100 score: the share of
// "yes" answers, rounded. Passing is score ≥ 50, so exactly 50 passes.
func ScoreAssessment(answers []bool) AssessmentResult {
	yes := 0
	for _, a := range answers {
		if a {
			yes++
		}
	}
	score := int(math.Round(float64(yes) / float64(len(answers)) * 100))
	return AssessmentResult{Score: score, Passed: score >= AssessmentPassScore}
}

// SubmitAssessment records a quiz attempt. Only services that require the
// assessment accept one, and the answer count must match the question set.
// Retakes overwrite the previous attempt; there is no attempt limit.
func (s *State) SubmitAssessment(answers []bool) (AssessmentResult, error) {
	if !s.Service.RequiresAssessment() {
		return AssessmentResult{}, fmt.Errorf("wizard: assessment not applicable to service %q", s.Service)
	}
	if len(answers) != len(AssessmentQuestions) {
		return AssessmentResult{}, fmt.Errorf("wizard: expected %d answers, got %d", len(AssessmentQuestions), len(answers))
	}
	res := ScoreAssessment(answers)
	s.Assessment = &res
	return res, nil
}

// AssessmentPassed reports whether the recorded attempt passed. A failed or
// missing attempt blocks advancement out of the assessment step.
func (s *State) AssessmentPassed() bool {
	return s.Assessment != nil && s.Assessment.Passed
}
