// internal/services/answer_validator.go

package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/utils"
)

/*
ValidateSubmission checks that every answer structurally matches its
question's variant. Shape mismatches are validation failures, rejected
before scoring — they are never silently scored as zero. The check is pure:
no side effects, no repository access.
*/
func ValidateSubmission(sc *models.Screening, answers []models.Answer) error {
	if len(answers) != len(sc.Questions) {
		return &utils.ValidationError{
			QuestionIndex: -1,
			Reason:        fmt.Sprintf("expected %d answers, got %d", len(sc.Questions), len(answers)),
		}
	}
	for i := range sc.Questions {
		if err := ValidateAnswer(sc, i, &sc.Questions[i], &answers[i]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAnswer checks one question/answer pair. idx is only used to build
// the error; answers correlate to questions by position.
func ValidateAnswer(sc *models.Screening, idx int, q *models.Question, a *models.Answer) *utils.ValidationError {
	if a.Empty() {
		if q.Optional {
			return nil
		}
		return invalid(idx, "answer is required")
	}

	switch q.Type {
	case models.QuestionSingleChoice:
		if a.SelectedOption == nil {
			return invalid(idx, "single-choice answer must select an option")
		}
		if !slices.Contains(q.Options, *a.SelectedOption) {
			return invalid(idx, fmt.Sprintf("selected option %q is not among the question's options", *a.SelectedOption))
		}

	case models.QuestionMultiSelect:
		if len(a.SelectedOptions) == 0 {
			return invalid(idx, "multi-select answer must select at least one option")
		}
		seen := make(map[string]bool, len(a.SelectedOptions))
		for _, opt := range a.SelectedOptions {
			if !slices.Contains(q.Options, opt) {
				return invalid(idx, fmt.Sprintf("selected option %q is not among the question's options", opt))
			}
			if seen[opt] {
				return invalid(idx, fmt.Sprintf("option %q selected more than once", opt))
			}
			seen[opt] = true
		}

	case models.QuestionRanking:
		if a.Choice == nil || (*a.Choice != models.RankingChoiceA && *a.Choice != models.RankingChoiceB) {
			return invalid(idx, "ranking answer must choose A or B")
		}
		minWords := sc.MinJustificationWords
		if q.MinWords != nil {
			minWords = *q.MinWords
		}
		if got := wordCount(a.Justification); got < minWords {
			return invalid(idx, fmt.Sprintf("justification has %d words, minimum is %d", got, minWords))
		}

	case models.QuestionFactCheck:
		if a.Verdict == nil || !validVerdict(*a.Verdict) {
			return invalid(idx, "fact-check answer must carry a verdict of TRUE, FALSE, MISLEADING or UNVERIFIABLE")
		}
		// A missing source URL is a soft flag (rule runner), not a failure.

	case models.QuestionRedTeam:
		if a.VulnerabilityTag == "" && a.Explanation == "" {
			return invalid(idx, "red-team answer must name a vulnerability or explain the finding")
		}

	case models.QuestionMultimodal:
		if a.Rating == nil {
			return invalid(idx, "multimodal answer must include a rating")
		}
		if *a.Rating < 1 || *a.Rating > 5 {
			return invalid(idx, fmt.Sprintf("rating %d is out of range [1,5]", *a.Rating))
		}

	case models.QuestionCoding:
		if strings.TrimSpace(a.Code) == "" {
			return invalid(idx, "coding answer must not be empty")
		}

	case models.QuestionText:
		if strings.TrimSpace(a.Text) == "" {
			return invalid(idx, "text answer must not be empty")
		}

	default:
		return invalid(idx, fmt.Sprintf("unknown question type %q", q.Type))
	}

	return nil
}

func invalid(idx int, reason string) *utils.ValidationError {
	return &utils.ValidationError{QuestionIndex: idx, Reason: reason}
}

func validVerdict(v models.VerdictType) bool {
	switch v {
	case models.VerdictTrue, models.VerdictFalse, models.VerdictMisleading, models.VerdictUnverifiable:
		return true
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
