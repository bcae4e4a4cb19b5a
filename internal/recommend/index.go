// Package recommend ranks postings of a corpus against a skill query and
// tracks what a user has looked at.
package recommend

import (
	"sort"

	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/simgraph"
	"github.com/spigell/skillmatch/internal/textvec"
)

// Match is a ranked posting with its similarity to the query.
type Match struct {
	Posting *jobs.Posting `json:"posting"`
	Score   float64       `json:"score"`
}

// Index binds a corpus to the vectorizer fitted over its skill descriptions.
// It never refits itself; build a new Index when the corpus changes.
type Index struct {
	corpus     *jobs.Corpus
	vectorizer *textvec.Vectorizer
	vectors    []textvec.Vector
}

// NewIndex fits a vectorizer over the skill descriptions of c.
func NewIndex(c *jobs.Corpus) *Index {
	if c == nil {
		c = jobs.NewCorpus(nil)
	}
	vectorizer, vectors := textvec.Fit(c.SkillTexts())
	return &Index{
		corpus:     c,
		vectorizer: vectorizer,
		vectors:    vectors,
	}
}

func (ix *Index) Corpus() *jobs.Corpus {
	return ix.corpus
}

func (ix *Index) Vectorizer() *textvec.Vectorizer {
	return ix.vectorizer
}

func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Project maps query into the index's vector space.
func (ix *Index) Project(query string) textvec.Vector {
	return ix.vectorizer.Transform(query)
}

// Rank returns up to topN postings most similar to query, best first.
func (ix *Index) Rank(query string, topN int) []Match {
	return ix.RankVector(ix.Project(query), topN)
}

// RankVector scores every posting against q and returns the topN best. Equal
// scores keep corpus order. A non-positive topN or an empty corpus yields no
// matches; a topN beyond the corpus size yields every posting.
func (ix *Index) RankVector(q textvec.Vector, topN int) []Match {
	if topN <= 0 || len(ix.vectors) == 0 {
		return nil
	}

	matches := make([]Match, len(ix.vectors))
	for i, row := range ix.vectors {
		matches[i] = Match{
			Posting: ix.corpus.Items[i],
			Score:   textvec.Cosine(q, row),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topN < len(matches) {
		matches = matches[:topN]
	}
	return matches
}

// Graph builds the similarity graph over the indexed postings.
func (ix *Index) Graph(threshold float64) (*simgraph.Graph, error) {
	return simgraph.Build(ix.corpus.IDs(), ix.vectors, threshold)
}
