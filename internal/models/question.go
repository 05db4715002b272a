// internal/models/question.go

package models

import "github.com/google/uuid"

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "SINGLE_CHOICE"
	QuestionMultiSelect  QuestionType = "MULTI_SELECT"
	QuestionRanking      QuestionType = "RANKING"
	QuestionFactCheck    QuestionType = "FACT_CHECK"
	QuestionRedTeam      QuestionType = "RED_TEAM"
	QuestionMultimodal   QuestionType = "MULTIMODAL"
	QuestionCoding       QuestionType = "CODING"
	QuestionText         QuestionType = "TEXT"
)

type VerdictType string

const (
	VerdictTrue         VerdictType = "TRUE"
	VerdictFalse        VerdictType = "FALSE"
	VerdictMisleading   VerdictType = "MISLEADING"
	VerdictUnverifiable VerdictType = "UNVERIFIABLE"
)

// RankingChoice values for ranking questions.
const (
	RankingChoiceA = "A"
	RankingChoiceB = "B"
)

/*
Question is a tagged union over QuestionType. Only the fields belonging to
the variant named by Type are populated; the validator and scorer dispatch
on Type and never sniff shapes.
*/
type Question struct {
	ID     uuid.UUID    `json:"id"`
	Type   QuestionType `json:"type"`
	Prompt string       `json:"prompt"`
	Points float64      `json:"points"`

	// Optional questions may be left unanswered without failing validation.
	Optional bool `json:"optional,omitempty"`

	// SINGLE_CHOICE / MULTI_SELECT
	Options        []string `json:"options,omitempty"`
	CorrectOption  *string  `json:"correct_option,omitempty"`
	CorrectOptions []string `json:"correct_options,omitempty"`

	// RANKING: two candidate responses to compare. CorrectChoice is set only
	// when one side is objectively preferred; without it the question is not
	// auto-gradable.
	CandidateA    string  `json:"candidate_a,omitempty"`
	CandidateB    string  `json:"candidate_b,omitempty"`
	CorrectChoice *string `json:"correct_choice,omitempty"`
	MinWords      *int    `json:"min_words,omitempty"`

	// FACT_CHECK
	ExpectedVerdict *VerdictType `json:"expected_verdict,omitempty"`

	// RED_TEAM
	ExpectedVulnerability *string `json:"expected_vulnerability,omitempty"`

	// MULTIMODAL
	ImageURL string `json:"image_url,omitempty"`

	// CODING
	Language string `json:"language,omitempty"`
}

// AutoGradable reports whether the engine can score this question without a
// human. MULTIMODAL, CODING and TEXT always need a reviewer; RANKING only
// when no correct choice is configured.
func (q *Question) AutoGradable() bool {
	switch q.Type {
	case QuestionSingleChoice, QuestionMultiSelect, QuestionFactCheck, QuestionRedTeam:
		return true
	case QuestionRanking:
		return q.CorrectChoice != nil
	default:
		return false
	}
}

/*
Answer is position-aligned with the screening's question list; the index is
the correlation key, there is no id map. Like Question, it is a tagged union:
only the fields for the matching question variant are meaningful.
*/
type Answer struct {
	// SINGLE_CHOICE / MULTI_SELECT
	SelectedOption  *string  `json:"selected_option,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`

	// RANKING
	Choice        *string `json:"choice,omitempty"`
	Justification string  `json:"justification,omitempty"`

	// FACT_CHECK
	Verdict     *VerdictType `json:"verdict,omitempty"`
	SourceURL   string       `json:"source_url,omitempty"`
	Explanation string       `json:"explanation,omitempty"`

	// RED_TEAM
	VulnerabilityTag string `json:"vulnerability_tag,omitempty"`

	// MULTIMODAL
	Description string `json:"description,omitempty"`
	Rating      *int   `json:"rating,omitempty"`

	// CODING / TEXT
	Code string `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

// Empty reports whether no variant field carries a value at all.
func (a *Answer) Empty() bool {
	return a.SelectedOption == nil &&
		len(a.SelectedOptions) == 0 &&
		a.Choice == nil &&
		a.Justification == "" &&
		a.Verdict == nil &&
		a.Explanation == "" &&
		a.VulnerabilityTag == "" &&
		a.Description == "" &&
		a.Rating == nil &&
		a.Code == "" &&
		a.Text == ""
}
