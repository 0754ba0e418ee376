package models

import (
	"strings"
	"time"
)

// Qualification is an educational-attainment code
type Qualification string

const (
	QualificationOLevel  Qualification = "OLEVEL"
	QualificationOND     Qualification = "OND"
	QualificationHND     Qualification = "HND"
	QualificationBSc     Qualification = "BSC"
	QualificationMSc     Qualification = "MSC"
	QualificationPhD     Qualification = "PHD"
	QualificationUnknown Qualification = "unknown"
)

// Qualifications lists the known codes from lowest to highest
var Qualifications = []Qualification{
	QualificationOLevel,
	QualificationOND,
	QualificationHND,
	QualificationBSc,
	QualificationMSc,
	QualificationPhD,
}

// education labels used by the first iteration of the screening form
var educationAliases = map[string]Qualification{
	"HIGHSCHOOL": QualificationOLevel,
	"BACHELORS":  QualificationBSc,
	"BACHELOR":   QualificationBSc,
	"MASTERS":    QualificationMSc,
	"MASTER":     QualificationMSc,
}

// ParseQualification maps free text onto a qualification code.
// Unrecognised input yields QualificationUnknown, never an error.
func ParseQualification(s string) Qualification {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '.', ' ', '\'', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))

	for _, q := range Qualifications {
		if key == string(q) {
			return q
		}
	}
	if q, ok := educationAliases[key]; ok {
		return q
	}
	return QualificationUnknown
}

// IsKnown reports whether q is one of the fixed codes
func (q Qualification) IsKnown() bool {
	for _, known := range Qualifications {
		if q == known {
			return true
		}
	}
	return false
}

// Verdict is the categorical outcome of an evaluation
type Verdict string

const (
	VerdictWeak    Verdict = "Weak"
	VerdictAverage Verdict = "Average"
	VerdictStrong  Verdict = "Strong"
)

// Verdicts lists every verdict from lowest to highest band
var Verdicts = []Verdict{VerdictWeak, VerdictAverage, VerdictStrong}

// ParseVerdict matches a verdict name case-insensitively
func ParseVerdict(s string) (Verdict, bool) {
	for _, v := range Verdicts {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, true
		}
	}
	return "", false
}

// Label returns the long form shown to reviewers
func (v Verdict) Label() string {
	switch v {
	case VerdictStrong:
		return "Strong Candidate (Shortlist)"
	case VerdictAverage:
		return "Average Candidate (Consider further screening)"
	case VerdictWeak:
		return "Weak Candidate (Not suitable)"
	}
	return string(v)
}

// Source records how a candidate entered the session
type Source string

const (
	SourceManual   Source = "manual"
	SourceBulk     Source = "bulk"
	SourceDocument Source = "document"
)

// CandidateInput holds the fields a candidate is scored on
type CandidateInput struct {
	Name            string        `json:"name"`
	Skills          []string      `json:"skills"`
	ExperienceYears int           `json:"experience_years"`
	Qualification   Qualification `json:"qualification"`
}

// Normalize coerces the input into its invariants: distinct skills,
// non-negative experience and a valid qualification code.
func (c CandidateInput) Normalize() CandidateInput {
	c.Name = strings.TrimSpace(c.Name)
	c.Skills = NormalizeSkills(c.Skills)
	if c.ExperienceYears < 0 {
		c.ExperienceYears = 0
	}
	if !c.Qualification.IsKnown() {
		c.Qualification = ParseQualification(string(c.Qualification))
	}
	return c
}

// DisplayName falls back to a placeholder for unnamed candidates
func (c CandidateInput) DisplayName() string {
	if c.Name == "" {
		return "Candidate"
	}
	return c.Name
}

// NormalizeSkills trims entries, drops empties and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// SplitSkills parses a comma-joined skills string
func SplitSkills(s string) []string {
	return NormalizeSkills(strings.Split(s, ","))
}

// JoinSkills renders skills in the comma-joined form used by CSV files
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// EvaluationResult is the score and verdict for one candidate
type EvaluationResult struct {
	Score   int     `json:"score"`
	Verdict Verdict `json:"verdict"`
}

// ScreeningRecord is one entry of a session's history
type ScreeningRecord struct {
	Input     CandidateInput   `json:"input"`
	Result    EvaluationResult `json:"result"`
	Source    Source           `json:"source"`
	CreatedAt time.Time        `json:"created_at"`
}

// Session groups the screening history of one reviewer session
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Records   int       `json:"records"`
}
