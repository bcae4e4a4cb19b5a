package filtering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillmatch/internal/jobs"
)

func postings(skills ...string) []*jobs.Posting {
	out := make([]*jobs.Posting, 0, len(skills))
	for i, s := range skills {
		out = append(out, &jobs.Posting{ID: int64(i), Skills: s})
	}
	return out
}

func ids(postings []*jobs.Posting) []int64 {
	out := make([]int64, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.ID)
	}
	return out
}

func TestMissingSkills(t *testing.T) {
	kept, step, err := NewMissingSkills().Apply(context.Background(), postings("go", "", "   ", "sql"))
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 3}, ids(kept))
	assert.Equal(t, Step{Initial: 4, Dropped: 2, Left: 2}, step)
}

func TestKeywordsCaseInsensitiveSubstring(t *testing.T) {
	f := NewKeywords([]string{" PYTHON ", "", "excel"})
	require.True(t, f.IsEnabled())

	kept, step, err := f.Apply(context.Background(), postings("Python, SQL", "Java", "MS Excel", "CPython internals"))
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 2, 3}, ids(kept))
	assert.Equal(t, 1, step.Dropped)
}

func TestKeywordsDisabledWithoutKeywords(t *testing.T) {
	for _, kws := range [][]string{nil, {}, {"  ", ""}} {
		f := NewKeywords(kws)
		assert.False(t, f.IsEnabled())
	}
}

func TestDuplicateIDs(t *testing.T) {
	in := []*jobs.Posting{{ID: 7, Title: "first"}, {ID: 8}, {ID: 7, Title: "second"}}

	kept, step, err := NewDuplicateIDs(true, nil).Apply(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, kept, 2)
	assert.Equal(t, "first", kept[0].Title)
	assert.Equal(t, 1, step.Dropped)

	assert.False(t, NewDuplicateIDs(false, nil).IsEnabled())
}

func TestRunFiltersSkipsDisabledAndLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	f := New([]Filter{
		NewMissingSkills(),
		NewKeywords(nil),
		NewKeywords([]string{"go"}),
	}, zap.New(core))

	kept, err := f.RunFilters(context.Background(), postings("Go", "", "Rust", "golang"))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3}, ids(kept))

	steps := observed.FilterMessage("filter step").All()
	require.Len(t, steps, 2)
	assert.Equal(t, "missing_skills", steps[0].ContextMap()["name"])
	assert.Equal(t, int64(1), steps[1].ContextMap()["dropped"])
}

func TestRunFiltersHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]Filter{NewMissingSkills()}, nil).RunFilters(ctx, postings("go"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	statuses := New([]Filter{NewMissingSkills(), NewKeywords(nil)}, nil).Describe()

	require.Len(t, statuses, 2)
	assert.Equal(t, Status{Name: "missing_skills", Enabled: true}, statuses[0])
	assert.False(t, statuses[1].Enabled)
	assert.Equal(t, "no keywords supplied", statuses[1].Reason)
}
