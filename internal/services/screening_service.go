// internal/services/screening_service.go

package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/poofware/screening-service/internal/dtos"
	"github.com/poofware/screening-service/internal/models"
	"github.com/poofware/screening-service/internal/repositories"
	"github.com/poofware/screening-service/internal/utils"
)

type ScreeningService struct {
	screeningRepo repositories.ScreeningRepository
}

func NewScreeningService(screeningRepo repositories.ScreeningRepository) *ScreeningService {
	return &ScreeningService{screeningRepo: screeningRepo}
}

/*
CreateScreening validates the configuration before anything is persisted so
submissions never hit an unscorable screening: AUTO mode requires every
question to carry an answer key, gradable variants must have keys matching
their options, and MANUAL/HYBRID screenings without a rubric are allowed
(score comes from AdminScore) but rubrics must be internally sane.
*/
func (s *ScreeningService) CreateScreening(ctx context.Context, req dtos.CreateScreeningRequest) (*models.Screening, error) {
	screening := &models.Screening{
		ID:                    uuid.New(),
		Title:                 req.Title,
		Category:              req.Category,
		EvaluationMode:        models.EvaluationModeType(req.EvaluationMode),
		PassingScore:          req.PassingScore,
		MinJustificationWords: req.MinJustificationWords,
		TimeLimitMinutes:      req.TimeLimitMinutes,
	}

	for i, in := range req.Questions {
		q, err := buildQuestion(i, in)
		if err != nil {
			return nil, err
		}
		if screening.EvaluationMode == models.EvaluationModeAuto && !q.AutoGradable() {
			return nil, &utils.ConfigurationError{
				Reason: fmt.Sprintf("question %d (%s) cannot be auto-graded in AUTO mode", i, q.Type),
			}
		}
		screening.Questions = append(screening.Questions, *q)
	}

	for _, r := range req.Rubric {
		screening.Rubric = append(screening.Rubric, models.RubricCriterion{
			Criteria: r.Criteria,
			Weight:   r.Weight,
			MaxScore: r.MaxScore,
		})
	}

	if err := s.screeningRepo.Create(ctx, screening); err != nil {
		return nil, err
	}
	return screening, nil
}

// ListScreenings returns the screenings tagged with a category hint. The
// category is free text; an unknown one is an empty list, not an error.
func (s *ScreeningService) ListScreenings(ctx context.Context, category string) ([]*models.Screening, error) {
	return s.screeningRepo.ListByCategory(ctx, category)
}

func (s *ScreeningService) GetScreening(ctx context.Context, id uuid.UUID) (*models.Screening, error) {
	screening, err := s.screeningRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, utils.ErrScreeningNotFound
	}
	return screening, nil
}

func buildQuestion(idx int, in dtos.QuestionInput) (*models.Question, error) {
	q := &models.Question{
		ID:         uuid.New(),
		Type:       models.QuestionType(in.Type),
		Prompt:     in.Prompt,
		Points:     in.Points,
		Optional:   in.Optional,
		Options:    in.Options,
		CandidateA: in.CandidateA,
		CandidateB: in.CandidateB,
		MinWords:   in.MinWords,
		ImageURL:   in.ImageURL,
		Language:   in.Language,
	}

	switch q.Type {
	case models.QuestionSingleChoice:
		if len(in.Options) < 2 {
			return nil, configErr(idx, "single-choice question needs at least two options")
		}
		if in.CorrectOption == nil {
			return nil, configErr(idx, "single-choice question needs a correct option")
		}
		if !slices.Contains(in.Options, *in.CorrectOption) {
			return nil, configErr(idx, "correct option is not among the options")
		}
		q.CorrectOption = in.CorrectOption

	case models.QuestionMultiSelect:
		if len(in.Options) < 2 {
			return nil, configErr(idx, "multi-select question needs at least two options")
		}
		if len(in.CorrectOptions) == 0 {
			return nil, configErr(idx, "multi-select question needs at least one correct option")
		}
		for _, c := range in.CorrectOptions {
			if !slices.Contains(in.Options, c) {
				return nil, configErr(idx, fmt.Sprintf("correct option %q is not among the options", c))
			}
		}
		q.CorrectOptions = in.CorrectOptions

	case models.QuestionRanking:
		if in.CandidateA == "" || in.CandidateB == "" {
			return nil, configErr(idx, "ranking question needs both candidate responses")
		}
		q.CorrectChoice = in.CorrectChoice

	case models.QuestionFactCheck:
		if in.ExpectedVerdict == nil {
			return nil, configErr(idx, "fact-check question needs an expected verdict")
		}
		v := models.VerdictType(*in.ExpectedVerdict)
		if !validVerdict(v) {
			return nil, configErr(idx, fmt.Sprintf("unknown verdict %q", *in.ExpectedVerdict))
		}
		q.ExpectedVerdict = &v

	case models.QuestionRedTeam:
		if in.ExpectedVulnerability == nil || *in.ExpectedVulnerability == "" {
			return nil, configErr(idx, "red-team question needs an expected vulnerability tag")
		}
		q.ExpectedVulnerability = in.ExpectedVulnerability

	case models.QuestionMultimodal:
		if in.ImageURL == "" {
			return nil, configErr(idx, "multimodal question needs an image reference")
		}

	case models.QuestionCoding, models.QuestionText:
		// Free-form; nothing to key.

	default:
		return nil, configErr(idx, fmt.Sprintf("unknown question type %q", in.Type))
	}

	return q, nil
}

func configErr(idx int, reason string) error {
	return &utils.ConfigurationError{Reason: fmt.Sprintf("question %d: %s", idx, reason)}
}
