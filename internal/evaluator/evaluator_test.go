package evaluator

import (
	"fmt"
	"math"
	"testing"

	"github.com/khrees2412/screener/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreExamples(t *testing.T) {
	tests := []struct {
		name    string
		input   models.CandidateInput
		score   int
		verdict models.Verdict
	}{
		{
			name: "python sql msc",
			input: models.CandidateInput{
				Skills:          []string{"Python", "SQL"},
				ExperienceYears: 6,
				Qualification:   models.QualificationMSc,
			},
			score:   75,
			verdict: models.VerdictStrong,
		},
		{
			name: "no skills unknown qualification",
			input: models.CandidateInput{
				ExperienceYears: 1,
				Qualification:   models.QualificationUnknown,
			},
			score:   5,
			verdict: models.VerdictWeak,
		},
		{
			name: "duplicate skills count once",
			input: models.CandidateInput{
				Skills:          []string{"Go", "go", " GO ", "SQL"},
				ExperienceYears: 2,
				Qualification:   models.QualificationBSc,
			},
			score:   50,
			verdict: models.VerdictAverage,
		},
		{
			name: "clamped at maximum",
			input: models.CandidateInput{
				Skills:          []string{"a", "b", "c", "d", "e", "f"},
				ExperienceYears: 10,
				Qualification:   models.QualificationPhD,
			},
			score:   100,
			verdict: models.VerdictStrong,
		},
		{
			name:    "negative experience coerced",
			input:   models.CandidateInput{ExperienceYears: -4},
			score:   0,
			verdict: models.VerdictWeak,
		},
		{
			name:    "huge experience does not overflow",
			input:   models.CandidateInput{ExperienceYears: math.MaxInt},
			score:   100,
			verdict: models.VerdictStrong,
		},
	}

	scorer := NewDeterministic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.input)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.verdict, got.Verdict)
		})
	}
}

func TestScoreExperienceOnly(t *testing.T) {
	scorer := NewDeterministic()
	for years := 0; years <= 40; years++ {
		got := scorer.Score(models.CandidateInput{
			ExperienceYears: years,
			Qualification:   models.QualificationUnknown,
		})
		assert.Equal(t, Clamp(years*5), got.Score, "years=%d", years)
	}
}

func TestScoreMonotonic(t *testing.T) {
	scorer := NewDeterministic()

	prev := -1
	for years := 0; years <= 30; years++ {
		got := scorer.Score(models.CandidateInput{
			Skills:          []string{"Python"},
			ExperienceYears: years,
			Qualification:   models.QualificationHND,
		}).Score
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	prev = -1
	skills := []string{}
	for i := 0; i < 12; i++ {
		skills = append(skills, fmt.Sprintf("skill-%d", i))
		got := scorer.Score(models.CandidateInput{
			Skills:          skills,
			ExperienceYears: 1,
		}).Score
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestVerdictBands(t *testing.T) {
	counts := map[models.Verdict]int{}
	for score := MinScore; score <= MaxScore; score++ {
		counts[VerdictFor(score)]++
	}
	assert.Equal(t, 40, counts[models.VerdictWeak])
	assert.Equal(t, 30, counts[models.VerdictAverage])
	assert.Equal(t, 31, counts[models.VerdictStrong])

	assert.Equal(t, models.VerdictWeak, VerdictFor(39))
	assert.Equal(t, models.VerdictAverage, VerdictFor(40))
	assert.Equal(t, models.VerdictAverage, VerdictFor(69))
	assert.Equal(t, models.VerdictStrong, VerdictFor(70))
}

func TestPointsFor(t *testing.T) {
	assert.Equal(t, 0, PointsFor(models.QualificationUnknown))
	assert.Equal(t, 0, PointsFor("DIPLOMA"))
	assert.Equal(t, 30, PointsFor(models.QualificationPhD))
}

func TestExplain(t *testing.T) {
	b := Explain(models.CandidateInput{
		Skills:          []string{"Python", "SQL"},
		ExperienceYears: 6,
		Qualification:   models.QualificationMSc,
	})
	assert.Equal(t, Breakdown{Skills: 20, Experience: 30, Qualification: 25, Raw: 75}, b)
}

func TestPerturbedStaysNearFormula(t *testing.T) {
	scorer := New(ModePerturbed, WithNoise(3), WithSeed(42))
	input := models.CandidateInput{
		Skills:          []string{"Python"},
		ExperienceYears: 4,
	}
	for i := 0; i < 200; i++ {
		got := scorer.Score(input)
		assert.InDelta(t, 30, got.Score, 3)
		assert.Equal(t, VerdictFor(got.Score), got.Verdict)
	}
}

func TestRandomModeIsBoundedAndSeeded(t *testing.T) {
	a := New(ModeRandom, WithSeed(7))
	b := New(ModeRandom, WithSeed(7))
	for i := 0; i < 100; i++ {
		ra := a.Score(models.CandidateInput{})
		rb := b.Score(models.CandidateInput{})
		require.Equal(t, ra, rb)
		assert.GreaterOrEqual(t, ra.Score, MinScore)
		assert.LessOrEqual(t, ra.Score, MaxScore)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDeterministic, m)

	m, err = ParseMode("perturbed")
	require.NoError(t, err)
	assert.Equal(t, ModePerturbed, m)

	_, err = ParseMode("lottery")
	assert.Error(t, err)
}
