package evaluator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/khrees2412/screener/pkg/models"
)

const (
	pointsPerSkill = 10
	pointsPerYear  = 5

	// MinScore and MaxScore bound every evaluation
	MinScore = 0
	MaxScore = 100

	averageThreshold = 40
	strongThreshold  = 70

	// experience beyond this already saturates the score
	maxCountedYears = MaxScore/pointsPerYear + 1
)

// QualificationPoints is the fixed qualification score table
var QualificationPoints = map[models.Qualification]int{
	models.QualificationOLevel: 5,
	models.QualificationOND:    10,
	models.QualificationHND:    15,
	models.QualificationBSc:    20,
	models.QualificationMSc:    25,
	models.QualificationPhD:    30,
}

// PointsFor returns the table value for q, or 0 when q is unknown
func PointsFor(q models.Qualification) int {
	return QualificationPoints[q]
}

// VerdictFor maps a clamped score onto its band
func VerdictFor(score int) models.Verdict {
	switch {
	case score < averageThreshold:
		return models.VerdictWeak
	case score < strongThreshold:
		return models.VerdictAverage
	default:
		return models.VerdictStrong
	}
}

// Clamp bounds v to [MinScore, MaxScore]
func Clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Mode selects how scores are produced
type Mode string

const (
	// ModeDeterministic applies the rule formula only
	ModeDeterministic Mode = "deterministic"
	// ModePerturbed adds bounded uniform noise to the formula
	ModePerturbed Mode = "perturbed"
	// ModeRandom ignores the input and draws a score uniformly
	ModeRandom Mode = "random"
)

// ParseMode validates a configured mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDeterministic:
		return ModeDeterministic, nil
	case ModePerturbed:
		return ModePerturbed, nil
	case ModeRandom:
		return ModeRandom, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}

// DefaultNoise is the perturbation amplitude used when none is configured
const DefaultNoise = 5

// Breakdown exposes how a deterministic score was assembled
type Breakdown struct {
	Skills        int
	Experience    int
	Qualification int
	Raw           int
}

// Explain computes the deterministic components for input
func Explain(input models.CandidateInput) Breakdown {
	input = input.Normalize()

	years := input.ExperienceYears
	if years > maxCountedYears {
		years = maxCountedYears
	}

	b := Breakdown{
		Skills:        len(input.Skills) * pointsPerSkill,
		Experience:    years * pointsPerYear,
		Qualification: PointsFor(input.Qualification),
	}
	b.Raw = b.Skills + b.Experience + b.Qualification
	return b
}

// Scorer turns candidate inputs into evaluation results
type Scorer struct {
	mode  Mode
	noise int
	rng   *rand.Rand
}

// Option customises a Scorer
type Option func(*Scorer)

// WithNoise sets the perturbation amplitude for ModePerturbed
func WithNoise(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.noise = n
		}
	}
}

// WithSeed makes the random modes reproducible. A zero seed keeps the
// time-based source.
func WithSeed(seed uint64) Option {
	return func(s *Scorer) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// New returns a Scorer for the given mode
func New(mode Mode, opts ...Option) *Scorer {
	now := uint64(time.Now().UnixNano())
	s := &Scorer{
		mode:  mode,
		noise: DefaultNoise,
		rng:   rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDeterministic returns a Scorer that applies the formula only
func NewDeterministic() *Scorer {
	return New(ModeDeterministic)
}

// Mode reports the scorer's configured mode
func (s *Scorer) Mode() Mode {
	return s.mode
}

// Score evaluates one candidate. It never fails: missing or malformed
// fields count as zero.
func (s *Scorer) Score(input models.CandidateInput) models.EvaluationResult {
	var raw int
	switch s.mode {
	case ModeRandom:
		raw = s.rng.IntN(MaxScore + 1)
	case ModePerturbed:
		raw = Explain(input).Raw
		if s.noise > 0 {
			raw += s.rng.IntN(2*s.noise+1) - s.noise
		}
	default:
		raw = Explain(input).Raw
	}

	score := Clamp(raw)
	return models.EvaluationResult{
		Score:   score,
		Verdict: VerdictFor(score),
	}
}
