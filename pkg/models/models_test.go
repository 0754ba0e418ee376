package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQualification(t *testing.T) {
	tests := []struct {
		in   string
		want Qualification
	}{
		{"MSC", QualificationMSc},
		{"msc", QualificationMSc},
		{"B.Sc", QualificationBSc},
		{" Ph.D ", QualificationPhD},
		{"PhD", QualificationPhD},
		{"O'Level", QualificationOLevel},
		{"o-level", QualificationOLevel},
		{"High School", QualificationOLevel},
		{"Bachelors", QualificationBSc},
		{"Bachelor", QualificationBSc},
		{"Masters", QualificationMSc},
		{"hnd", QualificationHND},
		{"OND", QualificationOND},
		{"Diploma", QualificationUnknown},
		{"", QualificationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQualification(tt.in))
		})
	}
}

func TestParseVerdict(t *testing.T) {
	v, ok := ParseVerdict(" strong ")
	assert.True(t, ok)
	assert.Equal(t, VerdictStrong, v)

	_, ok = ParseVerdict("excellent")
	assert.False(t, ok)

	assert.Equal(t, "Average Candidate (Consider further screening)", VerdictAverage.Label())
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" SQL", "Python", "", "sql", "  ", "Excel", "PYTHON"})
	assert.Equal(t, []string{"SQL", "Python", "Excel"}, got)

	assert.Equal(t, []string{"Python", "Machine Learning"}, SplitSkills("Python, Machine Learning,,python"))
	assert.Empty(t, SplitSkills(""))
	assert.Equal(t, "Python, SQL", JoinSkills([]string{"Python", "SQL"}))
}

func TestNormalize(t *testing.T) {
	got := CandidateInput{
		Name:            "  Ada Obi ",
		Skills:          []string{"Go", "go"},
		ExperienceYears: -3,
		Qualification:   "m.sc",
	}.Normalize()

	assert.Equal(t, CandidateInput{
		Name:            "Ada Obi",
		Skills:          []string{"Go"},
		ExperienceYears: 0,
		Qualification:   QualificationMSc,
	}, got)

	assert.Equal(t, "Candidate", CandidateInput{}.DisplayName())
	assert.Equal(t, QualificationUnknown, CandidateInput{Qualification: "bootcamp"}.Normalize().Qualification)
}
