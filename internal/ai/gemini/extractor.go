package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultMaxSkills    = 15
	// resumes longer than this are cut before being sent
	maxTextRunes = 20000
)

// SkillExtractor asks Gemini for the skills mentioned in a resume.
type SkillExtractor struct {
	generator contentGenerator
	maxSkills int
	maxLogLen int
	logger    *zap.Logger
}

func NewSkillExtractor(generator contentGenerator, maxSkills, maxLogLength int, log *zap.Logger) *SkillExtractor {
	if maxSkills <= 0 {
		maxSkills = defaultMaxSkills
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &SkillExtractor{
		generator: generator,
		maxSkills: maxSkills,
		maxLogLen: maxLogLength,
		logger:    logger.OrNop(log),
	}
}

// ExtractSkills returns the deduplicated skills Gemini finds in text, capped
// at the configured maximum.
func (e *SkillExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is required")
	}
	if runes := []rune(text); len(runes) > maxTextRunes {
		text = string(runes[:maxTextRunes])
	}

	system := buildSystemPrompt(e.maxSkills)

	e.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(text)),
		zap.String("prompt_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, system, text)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	skills, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if len(skills) > e.maxSkills {
		skills = skills[:e.maxSkills]
	}
	return skills, nil
}

func buildSystemPrompt(maxSkills int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "List at most {{MAX_SKILLS}} skills found in the text as JSON: {\"skills\": []}"
	}
	return strings.ReplaceAll(template, "{{MAX_SKILLS}}", strconv.Itoa(maxSkills))
}

func parseResponse(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return coerceStrings(data["skills"]), nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// coerceStrings accepts a JSON array of strings or a comma-separated string
// and returns trimmed, case-insensitively unique entries in order.
func coerceStrings(v any) []string {
	var items []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = utils.SplitList(val)
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
