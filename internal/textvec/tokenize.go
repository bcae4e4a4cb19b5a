package textvec

import (
	_ "embed"
	"strings"
	"unicode"
)

//go:embed stopwords.txt
var stopWordsList string

var stopWords = func() map[string]struct{} {
	words := strings.Fields(stopWordsList)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopWord reports whether term is in the English stop-word list.
func IsStopWord(term string) bool {
	_, ok := stopWords[term]
	return ok
}

// Tokenize lowercases text and splits it into terms of at least two word
// characters (letters, digits or underscore). Stop words are removed.
func Tokenize(text string) []string {
	var (
		terms []string
		start = -1
	)

	text = strings.ToLower(text)
	flush := func(end int) {
		if start < 0 {
			return
		}
		term := text[start:end]
		start = -1
		if len([]rune(term)) < 2 || IsStopWord(term) {
			return
		}
		terms = append(terms, term)
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return terms
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
