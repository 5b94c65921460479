package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/CharbelDaher34/hair-AI-sub001/internal/ai"
	"github.com/CharbelDaher34/hair-AI-sub001/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Briefer generates interviewer briefing notes through a content generator.
type Briefer struct {
	generator  contentGenerator
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	retryBackoff        = 2 * time.Second
)

func NewBriefer(generator contentGenerator, maxRetries, maxLogLength int, logger *zap.Logger) *Briefer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Briefer{
		generator:  generator,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     logger,
	}
}

// Brief builds the prompt from the scheduling context and asks the model for
// a briefing note. Transient generation failures are retried with a fixed
// backoff; backend scheduling calls are never affected by this.
func (b *Briefer) Brief(ctx context.Context, req *ai.BriefRequest) (*ai.Briefing, error) {
	if req == nil {
		return nil, fmt.Errorf("brief request is required")
	}
	if req.Category == "" {
		return nil, fmt.Errorf("interview category is required for a briefing")
	}

	contextJSON, err := json.MarshalIndent(map[string]any{
		"candidate":            req.Candidate,
		"position":             req.JobTitle,
		"interview_category":   req.Category,
		"completed_categories": req.Completed,
		"step_number":          req.StepNumber,
		"total_steps":          req.TotalSteps,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal briefing context: %w", err)
	}

	prompt := strings.ReplaceAll(promptTemplate, "%CONTEXT%", string(contextJSON))

	b.logger.Debug("requesting briefing note",
		zap.String("model", b.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, b.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, retryBackoff); err != nil {
				return nil, err
			}
			b.logger.Debug("retrying briefing generation", zap.Int("attempt", attempt))
		}

		raw, err := b.generator.GenerateContent(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		briefing, err := parseBriefing(raw)
		if err != nil {
			lastErr = err
			b.logger.Debug("unparseable briefing response",
				zap.String("response_preview", utils.TruncateForLog(raw, b.maxLogLen)),
				zap.Error(err),
			)
			continue
		}

		return briefing, nil
	}

	return nil, fmt.Errorf("generating briefing note: %w", lastErr)
}

func parseBriefing(raw string) (*ai.Briefing, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Note string `json:"note"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("decode briefing payload: %w", err)
	}

	note := strings.TrimSpace(payload.Note)
	if note == "" {
		return nil, fmt.Errorf("briefing payload has no note")
	}

	return &ai.Briefing{Note: note, Raw: raw}, nil
}
