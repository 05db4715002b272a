// internal/services/scoring_service.go

package services

import (
	"fmt"
	"strings"

	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/utils"
)

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

/*
Score computes the automatic component of a submission per the screening's
evaluation mode.

  - AUTO: every question must be deterministically gradable; the weighted sum
    is normalized to 0-100 and Score/AutoScore/AutoPass are all set.
  - MANUAL: nothing is computed; the score stays unset until an admin
    supplies one.
  - HYBRID: an advisory AutoScore/AutoPass is computed over the gradable
    subset only. Score stays unset — the admin rubric is authoritative.

Answers are assumed shape-valid (ValidateSubmission runs first).
*/
func (s *ScoringService) Score(sc *models.Screening, answers []models.Answer) (*models.ScoreResult, error) {
	if len(sc.Questions) == 0 {
		return nil, &utils.ConfigurationError{Reason: "screening has zero questions"}
	}
	if len(answers) != len(sc.Questions) {
		return nil, &utils.ConfigurationError{Reason: "answers are not aligned with questions"}
	}

	if sc.EvaluationMode == models.EvaluationModeManual {
		return &models.ScoreResult{}, nil
	}

	var earned, total float64
	for i := range sc.Questions {
		q := &sc.Questions[i]
		if !q.AutoGradable() {
			if sc.EvaluationMode == models.EvaluationModeAuto {
				return nil, &utils.ConfigurationError{
					Reason: fmt.Sprintf("question %d (%s) cannot be auto-graded in AUTO mode", i, q.Type),
				}
			}
			continue
		}
		total += q.Points
		earned += q.Points * gradeQuestion(q, &answers[i])
	}

	if total == 0 {
		// Hybrid screening with no gradable questions: no advisory score.
		return &models.ScoreResult{}, nil
	}

	autoScore := 100 * earned / total
	autoPass := autoScore >= sc.PassingScore

	result := &models.ScoreResult{
		AutoScore: &autoScore,
		AutoPass:  &autoPass,
	}
	if sc.EvaluationMode == models.EvaluationModeAuto {
		result.Score = &autoScore
	}
	return result, nil
}

// gradeQuestion returns the earned fraction [0,1] for one auto-gradable
// question.
func gradeQuestion(q *models.Question, a *models.Answer) float64 {
	switch q.Type {
	case models.QuestionSingleChoice:
		if a.SelectedOption != nil && q.CorrectOption != nil && *a.SelectedOption == *q.CorrectOption {
			return 1
		}
		return 0

	case models.QuestionMultiSelect:
		return gradeMultiSelect(q.CorrectOptions, a.SelectedOptions)

	case models.QuestionRanking:
		if a.Choice != nil && q.CorrectChoice != nil && *a.Choice == *q.CorrectChoice {
			return 1
		}
		return 0

	case models.QuestionFactCheck:
		if a.Verdict != nil && q.ExpectedVerdict != nil && *a.Verdict == *q.ExpectedVerdict {
			return 1
		}
		return 0

	case models.QuestionRedTeam:
		if q.ExpectedVulnerability != nil &&
			strings.EqualFold(strings.TrimSpace(a.VulnerabilityTag), *q.ExpectedVulnerability) {
			return 1
		}
		return 0
	}
	return 0
}

/*
gradeMultiSelect awards partial credit: the fraction of correct options
selected, minus a penalty for each over-selection, floored at 0.
*/
func gradeMultiSelect(correct, selected []string) float64 {
	if len(correct) == 0 {
		return 0
	}
	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}
	var hits, extras int
	for _, sel := range selected {
		if correctSet[sel] {
			hits++
		} else {
			extras++
		}
	}
	frac := (float64(hits) - float64(extras)) / float64(len(correct))
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

/*
RubricScore turns admin-awarded criterion points into the final normalized
score. Awards exceeding a criterion's max are clamped and flagged, never
silently accepted; awards naming unknown criteria are a configuration error.
Missing criteria score zero.

The result is invariant under rescaling: doubling every weight, max and
awarded value yields the same normalized score.
*/
func (s *ScoringService) RubricScore(
	rubric []models.RubricCriterion,
	awards []models.RubricAward,
) (float64, []models.RubricAward, []models.ValidationFlag, error) {
	if len(rubric) == 0 {
		return 0, nil, nil, &utils.ConfigurationError{Reason: "screening has no rubric"}
	}

	known := make(map[string]*models.RubricCriterion, len(rubric))
	for i := range rubric {
		known[rubric[i].Criteria] = &rubric[i]
	}
	awarded := make(map[string]float64, len(awards))
	for _, a := range awards {
		if known[a.Criteria] == nil {
			return 0, nil, nil, &utils.ConfigurationError{
				Reason: fmt.Sprintf("award references unknown rubric criterion %q", a.Criteria),
			}
		}
		awarded[a.Criteria] = a.Awarded
	}

	var flags []models.ValidationFlag
	breakdown := make([]models.RubricAward, 0, len(rubric))
	var num, den float64
	for _, crit := range rubric {
		points := awarded[crit.Criteria]
		if points > crit.MaxScore {
			flags = append(flags, models.ValidationFlag{
				Rule:   RuleRubricAwardClamped,
				Passed: false,
				Detail: fmt.Sprintf("criterion %q awarded %.2f, clamped to max %.2f", crit.Criteria, points, crit.MaxScore),
			})
			points = crit.MaxScore
		}
		if points < 0 {
			flags = append(flags, models.ValidationFlag{
				Rule:   RuleRubricAwardClamped,
				Passed: false,
				Detail: fmt.Sprintf("criterion %q awarded %.2f, clamped to 0", crit.Criteria, points),
			})
			points = 0
		}
		breakdown = append(breakdown, models.RubricAward{
			Criteria: crit.Criteria,
			Weight:   crit.Weight,
			MaxScore: crit.MaxScore,
			Awarded:  points,
		})
		num += crit.Weight * points
		den += crit.Weight * crit.MaxScore
	}

	if den == 0 {
		return 0, nil, nil, &utils.ConfigurationError{Reason: "rubric weights and max scores normalize to zero"}
	}
	return 100 * num / den, breakdown, flags, nil
}
