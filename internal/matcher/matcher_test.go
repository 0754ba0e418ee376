package matcher

import (
	"testing"

	"github.com/khrees2412/screener/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("C++, C# and 5years at ACME.")

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"c++", "c#", "and", "5", "years", "at", "acme"}, texts)
	assert.Equal(t, Number, tokens[3].Kind)
	assert.Equal(t, Word, tokens[4].Kind)
}

func TestSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case insensitive and distinct",
			text: "PYTHON developer, python scripts, sql and Excel",
			want: []string{"Python", "SQL", "Excel"},
		},
		{
			name: "java is not javascript",
			text: "Frontend in JavaScript, HTML/CSS",
			want: []string{"JavaScript", "HTML", "CSS"},
		},
		{
			name: "multi word skills",
			text: "Machine  Learning and data\nanalysis with C++",
			want: []string{"C++", "Machine Learning", "Data Analysis"},
		},
		{
			name: "nothing found",
			text: "Gardening and cooking",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Skills(Tokenize(tt.text)))
		})
	}
}

func TestExperienceYears(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"I have 6 years of experience", 6},
		{"12 YEARS in industry, 3 years in Go", 12},
		{"over 4years", 4},
		{"0 years then 2 years", 2},
		{"2019-2023, 5+ years", 0},
		{"three years", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperienceYears(tt.text, Tokenize(tt.text)))
		})
	}
}

func TestQualification(t *testing.T) {
	tests := []struct {
		text string
		want models.Qualification
	}{
		{"Holds an MSc in Statistics and a BSc", models.QualificationMSc},
		{"B.Sc. Computer Science", models.QualificationBSc},
		{"Ph.D candidate", models.QualificationPhD},
		{"O'Level certificate", models.QualificationOLevel},
		{"hnd, ond", models.QualificationHND},
		{"Bootcamp graduate", models.QualificationUnknown},
		{"MSCE certified", models.QualificationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Qualification(Tokenize(tt.text)))
		})
	}
}
