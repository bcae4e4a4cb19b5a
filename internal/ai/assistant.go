package ai

import "context"

// SkillExtractor pulls a short list of skills out of free text such as a resume.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}
