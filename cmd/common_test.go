package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillmatch/internal/jobs"
	"github.com/spigell/skillmatch/internal/recommend"
)

func TestPrintMatches(t *testing.T) {
	salary := 120000.0
	var buf bytes.Buffer

	printMatches(&buf, []recommend.Match{
		{Posting: &jobs.Posting{Title: "Data Engineer", Company: "Acme", Location: "Remote", MedSalary: &salary, PayPeriod: "YEARLY"}, Score: 0.8765},
		{Posting: &jobs.Posting{Title: "Analyst", Company: "Globex", Location: "NYC"}, Score: 0.1},
	})

	assert.Equal(t, "\nRecommended jobs:\n"+
		"- Data Engineer at Acme (Remote) | $120,000 median (yearly) | match=0.88\n"+
		"- Analyst at Globex (NYC) | match=0.10\n", buf.String())
}

func TestPrintRelatedAndRecent(t *testing.T) {
	var buf bytes.Buffer

	printRelated(&buf, &jobs.Posting{Title: "Data Engineer"}, nil)
	printRecent(&buf, nil)

	assert.Equal(t, "\nJobs related to \"Data Engineer\":\n- nothing similar enough\n"+
		"\nRecently viewed jobs:\n- none yet\n", buf.String())
}

func TestHandleActionExit(t *testing.T) {
	err := handleAction(PromptExit, &bytes.Buffer{}, nil, nil, nopLogger())
	assert.ErrorIs(t, err, errExit)

	err = handleAction("unknown", &bytes.Buffer{}, nil, nil, nopLogger())
	assert.EqualError(t, err, "invalid action: unknown")
}

func nopLogger() *zap.Logger { return zap.NewNop() }

const resumeText = "Jane Doe Senior Data Analyst with 6 years of experience in Python, SQL and Tableau dashboards. Led reporting for finance, marketing and sales teams."

func writePostings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postings.csv")
	content := "title,company_name,location,skills_desc,min_salary,max_salary,med_salary,pay_period\n" +
		"Data Analyst,Acme,NYC,\"Python, SQL, Tableau\",,,,\n" +
		"BI Developer,Globex,Remote,Tableau dashboards and SQL,,,,\n" +
		"Nurse,Clinic,Boston,Patient care,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(data string) *Config {
	return &Config{
		Data:      data,
		Recommend: &RecommendConfig{TopN: 5, Threshold: 0.55, Prefilter: true},
		AI:        &AIConfig{},
	}
}

func TestPrefilterKeywords(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	assert.Equal(t, []string{"Python", "SQL"}, prefilterKeywords("Python, SQL", true, true, log))
	assert.Nil(t, prefilterKeywords("Python, SQL", true, false, log))
	assert.Nil(t, prefilterKeywords(resumeText, false, true, log))
	assert.Equal(t, 1, observed.FilterMessage("skipping the keyword prefilter").Len())
}

func TestResumeTextQueryKeepsCorpus(t *testing.T) {
	config := testConfig(writePostings(t))

	keywords := prefilterKeywords(resumeText, false, config.Recommend.Prefilter, zap.NewNop())
	session, err := newSession(context.Background(), config, keywords, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, session.Index().Len())

	matches := session.Recommend(resumeText, 2)
	require.Len(t, matches, 2)
	assert.Greater(t, matches[0].Score, 0.0)
	assert.NotEqual(t, "Nurse", matches[0].Posting.Title)

	keywords = prefilterKeywords("tableau", true, config.Recommend.Prefilter, zap.NewNop())
	session, err = newSession(context.Background(), config, keywords, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, session.Index().Len())
}

func TestApplyRecommendFlagsHonorsZeroThreshold(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Float64P("threshold", "t", 0, "")
	cmd.Flags().Bool("no-prefilter", false, "")

	config := testConfig("")
	require.NoError(t, applyRecommendFlags(cmd, config))
	assert.Equal(t, 0.55, config.Recommend.Threshold)

	require.NoError(t, cmd.Flags().Parse([]string{"--threshold", "0", "--no-prefilter"}))
	require.NoError(t, applyRecommendFlags(cmd, config))
	assert.Zero(t, config.Recommend.Threshold)
	assert.False(t, config.Recommend.Prefilter)
}
