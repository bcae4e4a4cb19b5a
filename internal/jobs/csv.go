package jobs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
)

// Table is the decoded content of a postings CSV file.
type Table struct {
	Path     string
	Header   []string
	Postings []*Posting
	// HasIDs is set when the source carries its own job_id column.
	HasIDs bool
	// Malformed counts rows dropped because they could not be decoded.
	Malformed int
}

// ReadCSV reads postings from a CSV file whose first row is a header.
// It fails with *SourceNotFoundError when the file does not exist and with
// *SchemaError when any of the required columns is absent from the header.
// Rows that cannot be decoded are skipped and logged.
func ReadCSV(path string, required []string, log *zap.Logger) (*Table, error) {
	log = logger.OrNop(log)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open job data source: %w", err)
	}
	defer file.Close()

	return decodeCSV(file, path, required, log)
}

func decodeCSV(r io.Reader, path string, required []string, log *zap.Logger) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	header = normalizeHeader(header)

	if missing := missingColumns(header, required); len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}

	table := &Table{
		Path:   path,
		Header: header,
		HasIDs: slices.Contains(header, ColumnID),
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		posting, invalid, err := decodeRecord(header, record, table.HasIDs)
		if err != nil {
			table.Malformed++
			log.Warn("skipping malformed row",
				zap.String("source", path),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}
		if len(invalid) > 0 {
			log.Warn("ignoring unparsable salary",
				zap.String("source", path),
				zap.Int("line", line),
				zap.Strings("columns", invalid),
			)
		}
		table.Postings = append(table.Postings, posting)
	}

	return table, nil
}

// decodeRecord decodes one row. Salary cells that are not numbers are left
// unset and their columns returned; they never cost the row.
func decodeRecord(header, record []string, hasIDs bool) (*Posting, []string, error) {
	values := make(map[string]string, len(header))
	for i, column := range header {
		if i >= len(record) {
			break
		}
		if value := strings.TrimSpace(record[i]); value != "" {
			values[column] = value
		}
	}

	if hasIDs {
		if _, ok := values[ColumnID]; !ok {
			return nil, nil, errors.New("empty job_id")
		}
	}

	invalid := cleanSalaries(values)

	var posting Posting
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "csv",
		WeaklyTypedInput: true,
		Result:           &posting,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := decoder.Decode(values); err != nil {
		return nil, nil, err
	}

	return &posting, invalid, nil
}

var salaryColumns = []string{ColumnMinSalary, ColumnMaxSalary, ColumnMedSalary}

var salaryCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// cleanSalaries normalizes salary cells like "$85,000" and removes the ones
// that still do not parse, returning their columns.
func cleanSalaries(values map[string]string) []string {
	var invalid []string
	for _, column := range salaryColumns {
		raw, ok := values[column]
		if !ok {
			continue
		}
		cleaned := salaryCleaner.Replace(raw)
		if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
			delete(values, column)
			invalid = append(invalid, column)
			continue
		}
		values[column] = cleaned
	}
	return invalid
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, column := range header {
		if i == 0 {
			column = strings.TrimPrefix(column, "\ufeff")
		}
		out[i] = strings.TrimSpace(column)
	}
	return out
}

func missingColumns(header, required []string) []string {
	var missing []string
	for _, column := range required {
		if !slices.Contains(header, column) {
			missing = append(missing, column)
		}
	}
	return missing
}
