package jobs

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns that are absent from a source.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in %s: [%s]", e.Path, strings.Join(e.Missing, ", "))
}

// SourceNotFoundError reports a job data source that does not exist.
// It unwraps to the underlying fs error, so errors.Is(err, os.ErrNotExist) holds.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("job data source %q not found", e.Path)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}
