package recommend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/recency"
	"github.com/spigell/skillmatch/internal/simgraph"
)

// Related is a posting linked to another one in the similarity graph.
type Related struct {
	Posting    *jobs.Posting `json:"posting"`
	Similarity float64       `json:"similarity"`
}

// SessionOptions configure a Session.
type SessionOptions struct {
	// Threshold is the similarity an edge must exceed. Nil means
	// simgraph.DefaultThreshold; any other value is used as is.
	Threshold   *float64
	HistorySize int
	Logger      *zap.Logger
}

// Session is one user's view of an index: the similarity graph built over it
// and the postings recently looked at. Sessions share nothing with each other.
type Session struct {
	index     *Index
	threshold float64
	graph     *simgraph.Graph
	recent    *recency.Tracker
	logger    *zap.Logger
}

func NewSession(index *Index, opts SessionOptions) *Session {
	threshold := simgraph.DefaultThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	if index == nil {
		index = NewIndex(nil)
	}
	return &Session{
		index:     index,
		threshold: threshold,
		recent:    recency.New(opts.HistorySize),
		logger:    logger.OrNop(opts.Logger),
	}
}

func (s *Session) Index() *Index {
	return s.index
}

// Recommend ranks the session corpus against query.
func (s *Session) Recommend(query string, topN int) []Match {
	matches := s.index.Rank(query, topN)
	s.logger.Debug("ranked postings",
		zap.Int(logger.FieldPostings, s.index.Len()),
		zap.Int("top_n", topN),
		zap.Int("matches", len(matches)),
	)
	return matches
}

// Graph returns the similarity graph, building it on first use.
func (s *Session) Graph() (*simgraph.Graph, error) {
	if s.graph != nil {
		return s.graph, nil
	}

	g, err := s.index.Graph(s.threshold)
	if err != nil {
		return nil, fmt.Errorf("build similarity graph: %w", err)
	}

	s.logger.Info("similarity graph built",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Float64("threshold", s.threshold),
	)

	s.graph = g
	return g, nil
}

// Related returns postings linked to id, most similar first. An unknown id
// has nothing related.
func (s *Session) Related(id int64) ([]Related, error) {
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}

	neighbors := g.Neighbors(id)
	out := make([]Related, 0, len(neighbors))
	for _, n := range neighbors {
		p := s.index.corpus.FindByID(n.ID)
		if p == nil {
			continue
		}
		out = append(out, Related{Posting: p, Similarity: n.Weight})
	}
	return out, nil
}

// View records that the posting with id was shown to the user.
func (s *Session) View(id int64) {
	s.recent.Record(id)
}

// Recent returns the recently viewed postings, newest first. Views of ids the
// corpus does not know are skipped.
func (s *Session) Recent() []*jobs.Posting {
	ids := s.recent.Newest()
	out := make([]*jobs.Posting, 0, len(ids))
	for _, id := range ids {
		if p := s.index.corpus.FindByID(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// RecentIDs returns the recorded ids oldest first.
func (s *Session) RecentIDs() []int64 {
	return s.recent.List()
}
