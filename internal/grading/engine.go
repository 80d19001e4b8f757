// Package grading implements the weighted grade scoring engine. It is pure:
// identical inputs always produce identical results and nothing here touches
// storage or the clock.
package grading

import (
	"fmt"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

// Weights assigns a contribution weight to every grade component. The sum of
// all weights across the three periods must equal 100 so that the total score
// stays within [0,100].
type Weights struct {
	ParticipationHomework float64
	Presentations         float64
	Quizzes               float64
	CompositionExam       float64
	OralExam              float64
	FinalOralExam         float64
	FinalGrammarExam      float64
}

// DefaultWeights mirrors the grading policy: period 1 and period 2 each
// contribute up to 30 points, the final period up to 40.
var DefaultWeights = Weights{
	ParticipationHomework: 2,
	Presentations:         3,
	Quizzes:               5,
	CompositionExam:       10,
	OralExam:              10,
	FinalOralExam:         10,
	FinalGrammarExam:      30,
}

func (w Weights) total() float64 {
	regular := w.ParticipationHomework + w.Presentations + w.Quizzes + w.CompositionExam + w.OralExam
	return 2*regular + w.FinalOralExam + w.FinalGrammarExam
}

// Engine computes total scores and letter grades from raw period components.
type Engine struct {
	weights Weights
}

// NewEngine validates the weight table once at construction. A table that
// does not sum to 100 is a configuration fault, not a per-call error.
func NewEngine(weights Weights) (*Engine, error) {
	if total := weights.total(); total != 100 {
		return nil, appErrors.Wrap(
			fmt.Errorf("weights sum to %.2f", total),
			appErrors.ErrInvalidWeights.Code,
			appErrors.ErrInvalidWeights.Status,
			appErrors.ErrInvalidWeights.Message,
		)
	}
	return &Engine{weights: weights}, nil
}

// MustDefaultEngine returns an engine over DefaultWeights. The default table
// is a compile-time constant known to sum to 100, so failure is a programmer
// error.
func MustDefaultEngine() *Engine {
	engine, err := NewEngine(DefaultWeights)
	if err != nil {
		panic(err)
	}
	return engine
}

// Compute maps the three component sets to a bounded total score and letter
// grade. Components outside [0,100] are rejected; clamping is deliberately
// not applied so data-entry mistakes surface instead of being silently
// capped.
func (e *Engine) Compute(grades models.PeriodGrades) (float64, string, error) {
	if err := validateComponents(grades); err != nil {
		return 0, "", err
	}

	total := e.periodScore(grades.Period1) + e.periodScore(grades.Period2) + e.finalPeriodScore(grades.FinalPeriod)
	return total, LetterGrade(total), nil
}

// PeriodScore returns the weighted contribution of a single regular period.
func (e *Engine) PeriodScore(components models.GradeComponents) (float64, error) {
	if err := validateRegular(components, "period"); err != nil {
		return 0, err
	}
	return e.periodScore(components), nil
}

// FinalPeriodScore returns the weighted contribution of the final period.
func (e *Engine) FinalPeriodScore(components models.FinalGradeComponents) (float64, error) {
	if err := validateFinal(components); err != nil {
		return 0, err
	}
	return e.finalPeriodScore(components), nil
}

func (e *Engine) periodScore(c models.GradeComponents) float64 {
	w := e.weights
	return (c.ParticipationHomework*w.ParticipationHomework +
		c.Presentations*w.Presentations +
		c.Quizzes*w.Quizzes +
		c.CompositionExam*w.CompositionExam +
		c.OralExam*w.OralExam) / 100
}

func (e *Engine) finalPeriodScore(c models.FinalGradeComponents) float64 {
	w := e.weights
	return (c.FinalOralExam*w.FinalOralExam + c.FinalGrammarExam*w.FinalGrammarExam) / 100
}

// LetterGrade discretises an unrounded total into A-F. Thresholds are
// inclusive at the lower bound: 90.0 is an A, 89.999 a B.
func LetterGrade(total float64) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	default:
		return "F"
	}
}

func validateComponents(grades models.PeriodGrades) error {
	if err := validateRegular(grades.Period1, "period1"); err != nil {
		return err
	}
	if err := validateRegular(grades.Period2, "period2"); err != nil {
		return err
	}
	return validateFinal(grades.FinalPeriod)
}

func validateRegular(c models.GradeComponents, period string) error {
	fields := map[string]float64{
		"participationHomework": c.ParticipationHomework,
		"presentations":         c.Presentations,
		"quizzes":               c.Quizzes,
		"compositionExam":       c.CompositionExam,
		"oralExam":              c.OralExam,
	}
	for name, value := range fields {
		if value < 0 || value > 100 {
			return outOfRange(period, name, value)
		}
	}
	return nil
}

func validateFinal(c models.FinalGradeComponents) error {
	if c.FinalOralExam < 0 || c.FinalOralExam > 100 {
		return outOfRange("finalPeriod", "finalOralExam", c.FinalOralExam)
	}
	if c.FinalGrammarExam < 0 || c.FinalGrammarExam > 100 {
		return outOfRange("finalPeriod", "finalGrammarExam", c.FinalGrammarExam)
	}
	return nil
}

func outOfRange(period, field string, value float64) error {
	return appErrors.Clone(appErrors.ErrScoreOutOfRange,
		fmt.Sprintf("%s.%s value %.2f outside 0-100", period, field, value))
}
