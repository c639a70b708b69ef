package interpret

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/logger"
)

// narrativeGenerator implements domain.InterpretationGenerator on top of an
// Ollama-served model. It only writes prose; readiness and risk labels are
// decided before the model is called and handed to it as facts.
type narrativeGenerator struct {
	llmClient *ollama.LLM
	timeout   time.Duration
}

// NewNarrativeGenerator creates a new LLM-backed narrative generator.
func NewNarrativeGenerator(llm *ollama.LLM, timeout time.Duration) domain.InterpretationGenerator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &narrativeGenerator{llmClient: llm, timeout: timeout}
}

// GenerateNarrative implements domain.InterpretationGenerator.
func (g *narrativeGenerator) GenerateNarrative(ctx context.Context, input domain.InterpretationInput) (string, error) {
	l := logger.Get()
	l.Info("Generating narrative with LLM",
		zap.String("attempt_id", input.AttemptID),
		zap.Float64("overall_score", input.OverallScore),
		zap.String("readiness", input.ReadinessStatus))

	prompt := fmt.Sprintf(`You are a career counsellor writing feedback for a student who finished a career readiness assessment. Write a supportive narrative of 150-250 words in plain prose, no headings, no bullet points, no JSON.

Overall readiness score: %.1f out of 100
Readiness status: %s
Risk level: %s
Dimension scores (1 to 5 scale):
%s

Rules:
1. Address the student directly in the second person
2. Name their strongest and weakest dimensions and what each suggests
3. Close with one or two concrete next steps
4. Do not mention the raw numbers of the scoring scale`,
		input.OverallScore, input.ReadinessStatus, input.RiskLevel, formatDimensions(input.DimensionScores))

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.llmClient.Call(callCtx, prompt, llms.WithTemperature(0.4))
	if err != nil {
		l.Error("LLM narrative call failed",
			zap.String("attempt_id", input.AttemptID), zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	narrative := strings.TrimSpace(stripThinkTags(response))
	if narrative == "" {
		return "", fmt.Errorf("LLM returned an empty narrative")
	}
	return narrative, nil
}

func formatDimensions(scores map[string]float64) string {
	dimensions := make([]string, 0, len(scores))
	for dimension := range scores {
		dimensions = append(dimensions, dimension)
	}
	sort.Strings(dimensions)

	var b strings.Builder
	for _, dimension := range dimensions {
		fmt.Fprintf(&b, "- %s: %.2f\n", dimension, scores[dimension])
	}
	return b.String()
}

// stripThinkTags removes the reasoning block some local models prepend.
func stripThinkTags(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return s[:start] + s[end+len("</think>"):]
}
