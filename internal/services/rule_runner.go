// internal/services/rule_runner.go

package services

import (
	"fmt"
	"strings"

	"github.com/poofware/screening-service/internal/models"
)

// Rule names attached to validation flags. Stable strings: they are surfaced
// to reviewers and stored with the submission.
const (
	RuleJustificationLength = "justification_length"
	RuleTimeLimit           = "time_limit"
	RuleRequiredFields      = "required_fields"
	RuleFactCheckSource     = "fact_check_source"
	RuleRubricAwardClamped  = "rubric_award_clamped"
)

/*
RunRules applies the cross-cutting policy checks and returns advisory flags.
Flags are informational input to the human reviewer in manual/hybrid mode;
they never block scoring, and auto mode's pass/fail decision ignores them.

elapsedMinutes is the caller-measured submission delta; the time-limit rule
is skipped when the caller did not supply one.
*/
func RunRules(sc *models.Screening, answers []models.Answer, elapsedMinutes *int) []models.ValidationFlag {
	flags := []models.ValidationFlag{
		justificationLengthRule(sc, answers),
		requiredFieldsRule(sc, answers),
	}
	if f := factCheckSourceRule(sc, answers); f != nil {
		flags = append(flags, *f)
	}
	if f := timeLimitRule(sc, elapsedMinutes); f != nil {
		flags = append(flags, *f)
	}
	return flags
}

// justificationLengthRule checks the free-text reasoning fields (fact-check
// and red-team explanations, plain text answers) against the screening's
// minimum word count. Ranking justifications are hard-checked by the answer
// validator and not re-flagged here.
func justificationLengthRule(sc *models.Screening, answers []models.Answer) models.ValidationFlag {
	var short []string
	for i := range sc.Questions {
		var txt string
		switch sc.Questions[i].Type {
		case models.QuestionFactCheck, models.QuestionRedTeam:
			txt = answers[i].Explanation
		case models.QuestionText:
			txt = answers[i].Text
		default:
			continue
		}
		if wordCount(txt) < sc.MinJustificationWords {
			short = append(short, fmt.Sprintf("question %d", i))
		}
	}
	if len(short) > 0 {
		return models.ValidationFlag{
			Rule:   RuleJustificationLength,
			Passed: false,
			Detail: fmt.Sprintf("below %d words: %s", sc.MinJustificationWords, strings.Join(short, ", ")),
		}
	}
	return models.ValidationFlag{Rule: RuleJustificationLength, Passed: true}
}

// requiredFieldsRule reports completeness across all questions, optional
// ones included. The validator already hard-rejects empty required answers,
// so a failing flag here means optional questions were skipped.
func requiredFieldsRule(sc *models.Screening, answers []models.Answer) models.ValidationFlag {
	var skipped []string
	for i := range answers {
		if answers[i].Empty() {
			skipped = append(skipped, fmt.Sprintf("question %d", i))
		}
	}
	if len(skipped) > 0 {
		return models.ValidationFlag{
			Rule:   RuleRequiredFields,
			Passed: false,
			Detail: "unanswered: " + strings.Join(skipped, ", "),
		}
	}
	return models.ValidationFlag{Rule: RuleRequiredFields, Passed: true}
}

// factCheckSourceRule flags fact-check answers without a source URL. Absence
// is a soft flag, not a validation failure. Nil when the screening has no
// fact-check questions.
func factCheckSourceRule(sc *models.Screening, answers []models.Answer) *models.ValidationFlag {
	var missing []string
	seen := false
	for i := range sc.Questions {
		if sc.Questions[i].Type != models.QuestionFactCheck {
			continue
		}
		seen = true
		if strings.TrimSpace(answers[i].SourceURL) == "" {
			missing = append(missing, fmt.Sprintf("question %d", i))
		}
	}
	if !seen {
		return nil
	}
	if len(missing) > 0 {
		return &models.ValidationFlag{
			Rule:   RuleFactCheckSource,
			Passed: false,
			Detail: "no source cited: " + strings.Join(missing, ", "),
		}
	}
	return &models.ValidationFlag{Rule: RuleFactCheckSource, Passed: true}
}

// timeLimitRule records whether the caller-supplied elapsed time respected
// the screening's advisory limit. Nil when either side is unmeasured.
func timeLimitRule(sc *models.Screening, elapsedMinutes *int) *models.ValidationFlag {
	if elapsedMinutes == nil || sc.TimeLimitMinutes <= 0 {
		return nil
	}
	if *elapsedMinutes > sc.TimeLimitMinutes {
		return &models.ValidationFlag{
			Rule:   RuleTimeLimit,
			Passed: false,
			Detail: fmt.Sprintf("took %d minutes, limit is %d", *elapsedMinutes, sc.TimeLimitMinutes),
		}
	}
	return &models.ValidationFlag{Rule: RuleTimeLimit, Passed: true}
}
