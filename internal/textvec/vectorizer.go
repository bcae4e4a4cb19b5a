// Package textvec turns free-text skill descriptions into TF-IDF weighted
// sparse vectors and compares them by cosine similarity.
package textvec

import (
	"math"
	"sort"
)

// Vectorizer holds a vocabulary and inverse document frequencies fitted over
// one corpus. It is read-only after Fit and safe for concurrent Transform calls.
type Vectorizer struct {
	terms []string
	vocab map[string]int
	idf   []float64
}

// Fit builds the vocabulary from docs and returns the fitted vectorizer with
// one L2-normalized vector per document, in input order.
//
// Terms are weighted by raw count times the smoothed idf
// ln((1+N)/(1+df)) + 1. Columns follow the lexicographic order of terms, so
// the same docs always produce the same vocabulary and weights.
func Fit(docs []string) (*Vectorizer, []Vector) {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		terms: terms,
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}

	n := float64(len(docs))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tokens := range tokenized {
		vectors[i] = v.weigh(tokens)
	}

	return v, vectors
}

// Transform projects doc into the fitted vector space. Terms outside the
// vocabulary contribute nothing; a doc without known terms yields a zero vector.
func (v *Vectorizer) Transform(doc string) Vector {
	if v == nil {
		return Vector{}
	}
	return v.weigh(Tokenize(doc))
}

// Vocabulary returns the fitted terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len is the vocabulary size.
func (v *Vectorizer) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// IDF returns the inverse document frequency of term and whether it is known.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	if v == nil {
		return 0, false
	}
	idx, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}

func (v *Vectorizer) weigh(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, t := range tokens {
		if idx, ok := v.vocab[t]; ok {
			counts[idx]++
		}
	}

	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, counts[idx]*v.idf[idx])
	}

	return normalize(vec)
}
