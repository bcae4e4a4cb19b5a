// Package resume turns a PDF resume into text usable as a skill query.
package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/utils"
)

// FileNotFoundError reports a resume path that does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("resume file %q not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// ExtractText returns the text of every page of the PDF at path with runs of
// whitespace collapsed to single spaces.
//
// A missing file is an error. Anything that goes wrong while parsing the
// document is logged and yields empty text instead.
func ExtractText(path string, log *zap.Logger) (string, error) {
	log = logger.WithFields(log, zap.String("resume", path))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &FileNotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("stat resume: %w", err)
	}

	text, err := readPDF(path)
	if err != nil {
		log.Warn("could not read the resume", zap.Error(err))
		return "", nil
	}

	text = strings.Join(strings.Fields(text), " ")
	log.Debug("resume text extracted", zap.Int("length", len(text)))

	return text, nil
}

func readPDF(path string) (text string, err error) {
	// the pdf reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	return buf.String(), nil
}

// Query turns resume text into a ranking query. With an extractor the query
// is the comma-separated skill list it finds and skillList is true; when there
// is no extractor, or extraction fails or finds nothing, the raw text is
// returned with skillList false.
func Query(ctx context.Context, text string, extractor ai.SkillExtractor, log *zap.Logger) (query string, skillList bool) {
	log = logger.OrNop(log)

	if extractor == nil || strings.TrimSpace(text) == "" {
		return text, false
	}

	skills, err := extractor.ExtractSkills(ctx, text)
	if err != nil {
		log.Warn("falling back to raw resume text", zap.Error(err))
		return text, false
	}
	if len(skills) == 0 {
		log.Warn("falling back to raw resume text", zap.String("reason", "no skills extracted"))
		return text, false
	}

	query = strings.Join(skills, ", ")
	log.Info("skills extracted from resume",
		zap.Int("count", len(skills)),
		zap.String("skills", utils.TruncateForLog(query, 200)),
	)
	return query, true
}
