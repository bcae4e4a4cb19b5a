package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skillmatch/internal/jobs"
)

const header = "title,company_name,location,skills_desc,min_salary,max_salary,med_salary,pay_period\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAssignsSequentialIDsAfterDroppingRows(t *testing.T) {
	path := writeCSV(t, header+
		"Data Analyst,Acme,NYC,\"Python, SQL\",50000,80000,,YEARLY\n"+
		"Clerk,Globex,Remote,,,,,\n"+
		"Backend Dev,Initech,Austin,Go and Python,,,65000,yearly\n")

	c, err := Load(context.Background(), Options{Path: path})
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, []int64{0, 1}, c.IDs())
	assert.Equal(t, "Backend Dev", c.FindByID(1).Title)

	analyst := c.FindByID(0)
	require.NotNil(t, analyst.MinSalary)
	assert.Equal(t, 50000.0, *analyst.MinSalary)
	assert.Nil(t, analyst.MedSalary)
	assert.Equal(t, "$50,000 - $80,000 (yearly)", analyst.Salary())
}

func TestLoadKeywordFilter(t *testing.T) {
	path := writeCSV(t, header+
		"A,Acme,NYC,Python SQL,,,,\n"+
		"B,Acme,NYC,Java Spring,,,,\n"+
		"C,Acme,NYC,Excel,,,,\n")

	c, err := Load(context.Background(), Options{Path: path, Keywords: []string{"PYTHON", "excel"}})
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "A", c.Items[0].Title)
	assert.Equal(t, "C", c.Items[1].Title)
	assert.Equal(t, []int64{0, 1}, c.IDs())
}

func TestLoadUsesSourceIDs(t *testing.T) {
	path := writeCSV(t, "job_id,title,company_name,location,skills_desc\n"+
		"101,A,Acme,NYC,python\n"+
		"abc,B,Acme,NYC,java\n"+
		"101,C,Acme,NYC,excel\n"+
		"205,D,Acme,NYC,go\n")

	c, err := Load(context.Background(), Options{
		Path:     path,
		Required: []string{jobs.ColumnTitle, jobs.ColumnSkills},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{101, 205}, c.IDs())
	assert.Equal(t, "A", c.FindByID(101).Title)
}

func TestLoadSchemaError(t *testing.T) {
	path := writeCSV(t, "title,location\nA,NYC\n")

	c, err := Load(context.Background(), Options{Path: path})
	require.Nil(t, c)

	var schemaErr *jobs.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"company_name", "skills_desc", "min_salary", "max_salary", "med_salary", "pay_period"}, schemaErr.Missing)
}

func TestLoadSourceNotFound(t *testing.T) {
	_, err := Load(context.Background(), Options{Path: filepath.Join(t.TempDir(), "absent.csv")})

	var notFound *jobs.SourceNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyCorpus(t *testing.T) {
	c, err := Load(context.Background(), Options{Path: writeCSV(t, header)})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
