package textvec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "lowercases and splits", input: "Python, SQL; Excel", expect: []string{"python", "sql", "excel"}},
		{name: "drops stop words", input: "experience with the cloud and more", expect: []string{"experience", "cloud"}},
		{name: "drops single characters", input: "C R programming", expect: []string{"programming"}},
		{name: "keeps digits and underscores", input: "k8s snake_case ES2015", expect: []string{"k8s", "snake_case", "es2015"}},
		{name: "splits on punctuation", input: "node.js/c++", expect: []string{"node", "js"}},
		{name: "empty", input: "  ", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Tokenize(tt.input))
		})
	}
}

func TestFitVocabularyIsSortedAndDeterministic(t *testing.T) {
	docs := []string{"python sql", "python java", "excel"}

	v1, rows1 := Fit(docs)
	v2, rows2 := Fit(docs)

	assert.Equal(t, []string{"excel", "java", "python", "sql"}, v1.Vocabulary())
	assert.Equal(t, v1.Vocabulary(), v2.Vocabulary())
	assert.Equal(t, rows1, rows2)
	require.Len(t, rows1, 3)

	for _, row := range rows1 {
		assert.InDelta(t, 1.0, row.Norm(), 1e-12)
	}
}

func TestFitSmoothedIDF(t *testing.T) {
	v, _ := Fit([]string{"python sql", "python java", "excel"})

	idf, ok := v.IDF("python")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idf, 1e-12)

	idf, ok = v.IDF("excel")
	require.True(t, ok)
	assert.InDelta(t, math.Log(2.0)+1, idf, 1e-12)

	_, ok = v.IDF("rust")
	assert.False(t, ok)
}

func TestTransformOutOfVocabulary(t *testing.T) {
	v, rows := Fit([]string{"python sql", "python java", "excel"})

	q := v.Transform("haskell erlang")
	assert.True(t, q.IsZero())
	for _, row := range rows {
		assert.Zero(t, Cosine(q, row))
	}

	assert.True(t, v.Transform("").IsZero())
}

func TestTransformMatchesFittedRow(t *testing.T) {
	v, rows := Fit([]string{"python sql", "python java"})

	q := v.Transform("SQL python, rust")
	assert.InDelta(t, 1.0, Cosine(q, rows[0]), 1e-12)
}

func TestCosine(t *testing.T) {
	a := Vector{Indices: []int{0, 2}, Values: []float64{1, 1}}
	b := Vector{Indices: []int{2, 3}, Values: []float64{1, 1}}

	assert.InDelta(t, 0.5, Cosine(a, b), 1e-12)
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
	assert.Zero(t, Cosine(a, Vector{}))
	assert.Equal(t, []float64{1, 0, 1, 0}, a.Dense(4))
}

func TestNilVectorizer(t *testing.T) {
	var v *Vectorizer
	assert.Zero(t, v.Len())
	assert.Nil(t, v.Vocabulary())
	assert.True(t, v.Transform("python").IsZero())
}
