package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crixfer/DIID-GS/internal/models"
	appErrors "github.com/crixfer/DIID-GS/pkg/errors"
)

func perfectRegular() models.GradeComponents {
	return models.GradeComponents{
		ParticipationHomework: 100,
		Presentations:         100,
		Quizzes:               100,
		CompositionExam:       100,
		OralExam:              100,
	}
}

func TestNewEngineRejectsBadWeightTable(t *testing.T) {
	bad := DefaultWeights
	bad.FinalGrammarExam = 25

	_, err := NewEngine(bad)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidWeights.Code, appErr.Code)
}

func TestComputePerfectScore(t *testing.T) {
	engine := MustDefaultEngine()

	total, letter, err := engine.Compute(models.PeriodGrades{
		Period1:     perfectRegular(),
		Period2:     perfectRegular(),
		FinalPeriod: models.FinalGradeComponents{FinalOralExam: 100, FinalGrammarExam: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)
	assert.Equal(t, "A", letter)
}

func TestComputeAllZeros(t *testing.T) {
	engine := MustDefaultEngine()

	total, letter, err := engine.Compute(models.PeriodGrades{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, "F", letter)
}

func TestComputeSinglePeriodContribution(t *testing.T) {
	engine := MustDefaultEngine()

	// (0*2 + 0*3 + 0*5 + 70*10 + 80*10) / 100 = 15
	total, letter, err := engine.Compute(models.PeriodGrades{
		Period1: models.GradeComponents{CompositionExam: 70, OralExam: 80},
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, total, 1e-9)
	assert.Equal(t, "F", letter)
}

func TestComputePeriodCaps(t *testing.T) {
	engine := MustDefaultEngine()

	p1, err := engine.PeriodScore(perfectRegular())
	require.NoError(t, err)
	assert.Equal(t, 30.0, p1)

	final, err := engine.FinalPeriodScore(models.FinalGradeComponents{FinalOralExam: 100, FinalGrammarExam: 100})
	require.NoError(t, err)
	assert.Equal(t, 40.0, final)
}

func TestComputeRejectsOutOfRangeComponent(t *testing.T) {
	engine := MustDefaultEngine()

	cases := map[string]models.PeriodGrades{
		"above range": {Period1: models.GradeComponents{Quizzes: 150}},
		"below range": {Period2: models.GradeComponents{OralExam: -1}},
		"final exam":  {FinalPeriod: models.FinalGradeComponents{FinalGrammarExam: 101}},
	}
	for name, grades := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := engine.Compute(grades)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrScoreOutOfRange.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	engine := MustDefaultEngine()
	grades := models.PeriodGrades{
		Period1:     models.GradeComponents{ParticipationHomework: 85, Presentations: 70, Quizzes: 92, CompositionExam: 64, OralExam: 78},
		Period2:     models.GradeComponents{ParticipationHomework: 90, Presentations: 88, Quizzes: 75, CompositionExam: 81, OralExam: 69},
		FinalPeriod: models.FinalGradeComponents{FinalOralExam: 72, FinalGrammarExam: 84},
	}

	first, firstLetter, err := engine.Compute(grades)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, againLetter, err := engine.Compute(grades)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, firstLetter, againLetter)
	}
}

func TestComputeTotalBoundedForValidInputs(t *testing.T) {
	engine := MustDefaultEngine()
	samples := []models.PeriodGrades{
		{},
		{Period1: perfectRegular()},
		{Period1: perfectRegular(), Period2: perfectRegular()},
		{
			Period1:     perfectRegular(),
			Period2:     perfectRegular(),
			FinalPeriod: models.FinalGradeComponents{FinalOralExam: 100, FinalGrammarExam: 100},
		},
		{Period1: models.GradeComponents{Quizzes: 50.5, OralExam: 33.3}},
	}
	for _, grades := range samples {
		total, _, err := engine.Compute(grades)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 0.0)
		assert.LessOrEqual(t, total, 100.0)
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		total  float64
		letter string
	}{
		{90.0, "A"},
		{89.999, "B"},
		{80.0, "B"},
		{79.999, "C"},
		{70.0, "C"},
		{69.999, "D"},
		{60.0, "D"},
		{59.999, "F"},
		{0, "F"},
		{100, "A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.letter, LetterGrade(tc.total), "total %v", tc.total)
	}
}
