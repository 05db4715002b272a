package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/utils"
)

func TestValidateSubmission_CountMismatch(t *testing.T) {
	sc := twoChoiceScreening(models.EvaluationModeAuto)

	err := ValidateSubmission(sc, choiceAnswers("B"))

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, -1, verr.QuestionIndex)
}

func TestValidateAnswer_RequiredVsOptional(t *testing.T) {
	sc := twoChoiceScreening(models.EvaluationModeAuto)
	q := &sc.Questions[0]

	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{}))

	q.Optional = true
	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{}))
}

func TestValidateAnswer_SingleChoiceMembership(t *testing.T) {
	sc := twoChoiceScreening(models.EvaluationModeAuto)
	q := &sc.Questions[0] // options A, B, C

	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{SelectedOption: ptr("C")}))

	verr := ValidateAnswer(sc, 0, q, &models.Answer{SelectedOption: ptr("Z")})
	require.NotNil(t, verr)
	require.Equal(t, 0, verr.QuestionIndex)
}

func TestValidateAnswer_MultiSelect(t *testing.T) {
	sc := &models.Screening{}
	q := &models.Question{
		Type:    models.QuestionMultiSelect,
		Options: []string{"A", "B", "C"},
	}

	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{SelectedOptions: []string{"A", "C"}}))
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{SelectedOptions: []string{"A", "Z"}}), "unknown option")
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{SelectedOptions: []string{"A", "A"}}), "duplicate option")
}

func TestValidateAnswer_RankingJustificationLength(t *testing.T) {
	sc := &models.Screening{MinJustificationWords: 3}
	q := &models.Question{Type: models.QuestionRanking, CandidateA: "x", CandidateB: "y"}

	a := &models.Answer{Choice: ptr("A"), Justification: "too short"}
	require.NotNil(t, ValidateAnswer(sc, 0, q, a))

	a.Justification = "this is long enough"
	require.Nil(t, ValidateAnswer(sc, 0, q, a))

	// Per-question minimum overrides the screening default.
	q.MinWords = ptr(5)
	require.NotNil(t, ValidateAnswer(sc, 0, q, a))

	a.Choice = ptr("C")
	q.MinWords = nil
	require.NotNil(t, ValidateAnswer(sc, 0, q, a), "choice must be A or B")
}

func TestValidateAnswer_FactCheckVerdict(t *testing.T) {
	sc := &models.Screening{}
	q := &models.Question{Type: models.QuestionFactCheck}

	good := models.VerdictUnverifiable
	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{Verdict: &good}))

	bad := models.VerdictType("MAYBE")
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{Verdict: &bad}))

	// Missing source URL is not a validation failure.
	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{Verdict: &good, SourceURL: ""}))
}

func TestValidateAnswer_RedTeamNeedsTagOrExplanation(t *testing.T) {
	sc := &models.Screening{}
	q := &models.Question{Type: models.QuestionRedTeam}

	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{VulnerabilityTag: "xss"}))
	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{Explanation: "the model leaks its instructions"}))
}

func TestValidateAnswer_MultimodalRatingRange(t *testing.T) {
	sc := &models.Screening{}
	q := &models.Question{Type: models.QuestionMultimodal, ImageURL: "https://example.com/a.png"}

	require.Nil(t, ValidateAnswer(sc, 0, q, &models.Answer{Rating: ptr(3)}))
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{Rating: ptr(0)}))
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{Rating: ptr(6)}))
	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{Description: "no rating"}))
}

func TestValidateAnswer_CodingAndText(t *testing.T) {
	sc := &models.Screening{}

	coding := &models.Question{Type: models.QuestionCoding, Language: "go"}
	require.Nil(t, ValidateAnswer(sc, 0, coding, &models.Answer{Code: "package main"}))
	require.NotNil(t, ValidateAnswer(sc, 0, coding, &models.Answer{Code: "   "}))

	text := &models.Question{Type: models.QuestionText}
	require.Nil(t, ValidateAnswer(sc, 0, text, &models.Answer{Text: "an answer"}))
	require.NotNil(t, ValidateAnswer(sc, 0, text, &models.Answer{Text: " "}))
}

func TestValidateAnswer_UnknownType(t *testing.T) {
	sc := &models.Screening{}
	q := &models.Question{Type: models.QuestionType("ESSAY")}

	require.NotNil(t, ValidateAnswer(sc, 0, q, &models.Answer{Text: "x"}))
}
