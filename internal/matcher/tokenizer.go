package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes word tokens from number tokens
type Kind int

const (
	Word Kind = iota
	Number
)

// Token is a lower-cased slice of the scanned text
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// Tokenize splits text into word and number tokens. Words are runs of
// letters and digits starting with a letter, with any trailing '+' or '#'
// kept so that "C++" and "C#" survive. Numbers are runs of digits.
// Everything else separates tokens.
func Tokenize(text string) []Token {
	var tokens []Token

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case unicode.IsLetter(r):
			start := i
			i += size
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			for i < len(text) && (text[i] == '+' || text[i] == '#') {
				i++
			}
			tokens = append(tokens, Token{Kind: Word, Text: strings.ToLower(text[start:i]), Start: start, End: i})
		case unicode.IsDigit(r):
			start := i
			i += size
			for i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				if !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Kind: Number, Text: text[start:i], Start: start, End: i})
		default:
			i += size
		}
	}

	return tokens
}

// onlySpace reports whether s holds nothing but whitespace
func onlySpace(s string) bool {
	return strings.TrimSpace(s) == ""
}
