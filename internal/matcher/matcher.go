package matcher

import (
	"strconv"

	"github.com/khrees2412/screener/pkg/models"
)

// Phrase is a canonical term and the token sequences that spell it
type Phrase struct {
	Name      string
	Spellings [][]string
}

// Vocabulary is an ordered, closed set of phrases
type Vocabulary []Phrase

// SkillVocabulary is the closed set of recognised skills
var SkillVocabulary = Vocabulary{
	{Name: "Python", Spellings: [][]string{{"python"}}},
	{Name: "Java", Spellings: [][]string{{"java"}}},
	{Name: "C++", Spellings: [][]string{{"c++"}}},
	{Name: "SQL", Spellings: [][]string{{"sql"}}},
	{Name: "Excel", Spellings: [][]string{{"excel"}}},
	{Name: "Machine Learning", Spellings: [][]string{{"machine", "learning"}}},
	{Name: "Data Analysis", Spellings: [][]string{{"data", "analysis"}}},
	{Name: "React", Spellings: [][]string{{"react"}}},
	{Name: "Django", Spellings: [][]string{{"django"}}},
	{Name: "JavaScript", Spellings: [][]string{{"javascript"}}},
	{Name: "HTML", Spellings: [][]string{{"html"}}},
	{Name: "CSS", Spellings: [][]string{{"css"}}},
}

// QualificationVocabulary spells each qualification code, including the
// dotted and spaced forms that tokenize into several words
var QualificationVocabulary = Vocabulary{
	{Name: string(models.QualificationOLevel), Spellings: [][]string{{"olevel"}, {"o", "level"}, {"olevels"}, {"o", "levels"}}},
	{Name: string(models.QualificationOND), Spellings: [][]string{{"ond"}}},
	{Name: string(models.QualificationHND), Spellings: [][]string{{"hnd"}}},
	{Name: string(models.QualificationBSc), Spellings: [][]string{{"bsc"}, {"b", "sc"}}},
	{Name: string(models.QualificationMSc), Spellings: [][]string{{"msc"}, {"m", "sc"}}},
	{Name: string(models.QualificationPhD), Spellings: [][]string{{"phd"}, {"ph", "d"}}},
}

// matchAt returns the phrase spelled by the tokens starting at i, if any
func (v Vocabulary) matchAt(tokens []Token, i int) (string, int, bool) {
	for _, p := range v {
		for _, spelling := range p.Spellings {
			if spelledAt(tokens, i, spelling) {
				return p.Name, len(spelling), true
			}
		}
	}
	return "", 0, false
}

func spelledAt(tokens []Token, i int, spelling []string) bool {
	if i+len(spelling) > len(tokens) {
		return false
	}
	for j, word := range spelling {
		tok := tokens[i+j]
		if tok.Kind != Word || tok.Text != word {
			return false
		}
	}
	return true
}

// All returns every distinct phrase found in tokens, in vocabulary order
func (v Vocabulary) All(tokens []Token) []string {
	found := make(map[string]bool)
	for i := range tokens {
		if name, _, ok := v.matchAt(tokens, i); ok {
			found[name] = true
		}
	}

	names := []string{}
	for _, p := range v {
		if found[p.Name] {
			names = append(names, p.Name)
		}
	}
	return names
}

// First returns the earliest phrase found in tokens
func (v Vocabulary) First(tokens []Token) (string, bool) {
	for i := range tokens {
		if name, _, ok := v.matchAt(tokens, i); ok {
			return name, true
		}
	}
	return "", false
}

// Skills returns the distinct known skills mentioned in tokens
func Skills(tokens []Token) []string {
	return SkillVocabulary.All(tokens)
}

// Qualification returns the first qualification code mentioned in tokens
func Qualification(tokens []Token) models.Qualification {
	name, ok := QualificationVocabulary.First(tokens)
	if !ok {
		return models.QualificationUnknown
	}
	return models.Qualification(name)
}

// ExperienceYears returns the first positive integer that is followed by
// the word "years" with only whitespace between them, or 0 when absent.
// text must be the string tokens were produced from.
func ExperienceYears(text string, tokens []Token) int {
	for i := 0; i+1 < len(tokens); i++ {
		num, next := tokens[i], tokens[i+1]
		if num.Kind != Number || next.Kind != Word || next.Text != "years" {
			continue
		}
		if !onlySpace(text[num.End:next.Start]) {
			continue
		}
		n, err := strconv.Atoi(num.Text)
		if err != nil || n <= 0 {
			continue
		}
		return n
	}
	return 0
}
