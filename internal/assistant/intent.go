package assistant

import (
	"context"
	"regexp"
	"strings"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

const intentSystemPrompt = `You classify messages for a developer collaboration platform.
Given a user message, respond with a JSON object with exactly two keys:
  "intent": one of "find_people", "find_projects", or "other"
  "domain": a short phrase describing the technology or topic the user is looking for

Examples:
  "I need a React dev for my startup" -> {"intent": "find_people", "domain": "React frontend development"}
  "any open source Go projects to join?" -> {"intent": "find_projects", "domain": "Go open source"}
  "hello there" -> {"intent": "other", "domain": ""}

Respond with the JSON object only.`

// Models wrap JSON in prose or code fences often enough that strict
// parsing loses real answers, so pull the fields out with regexes.
var (
	intentPattern = regexp.MustCompile(`(?s)"intent"\s*:\s*"([^"]*)"`)
	domainPattern = regexp.MustCompile(`(?s)"domain"\s*:\s*"(.*?)"`)
)

type intentExtractorImpl struct {
	completer Completer
}

// NewIntentExtractor creates an extractor backed by a chat completion model.
func NewIntentExtractor(completer Completer) IntentExtractor {
	return &intentExtractorImpl{completer: completer}
}

// Extract classifies a message. A reply the patterns cannot match yields
// an empty result without an error; transport failures propagate.
func (e *intentExtractorImpl) Extract(ctx context.Context, message string) (domain.IntentResult, error) {
	l := log.Ctx(ctx)

	raw, err := e.completer.Complete(ctx, intentSystemPrompt, message)
	if err != nil {
		return domain.IntentResult{}, err
	}

	result := ParseIntentReply(raw)
	if result.Intent == "" {
		l.Warn().Str("reply", raw).Msg("no intent found in model reply")
	}
	return result, nil
}

// ParseIntentReply extracts the intent and domain fields from a model
// reply, trimming surrounding whitespace from both. When the intent
// field is absent, the whole result is empty.
func ParseIntentReply(raw string) domain.IntentResult {
	m := intentPattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.IntentResult{}
	}

	result := domain.IntentResult{Intent: strings.TrimSpace(m[1])}
	if dm := domainPattern.FindStringSubmatch(raw); dm != nil {
		result.Domain = strings.TrimSpace(dm[1])
	}
	return result
}
