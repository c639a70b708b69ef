package domain

import "context"

// InterpretationInput is the scored snapshot handed to the narrative
// generator: the overall percentage, per-dimension means, and the
// classifications already derived from them.
type InterpretationInput struct {
	AttemptID       string
	OverallScore    float64
	DimensionScores map[string]float64
	ReadinessStatus string
	RiskLevel       string
}

// InterpretationGenerator is the boundary to the AI-backed narrative
// service. It produces prose only; classifications are computed upstream.
// Failures here never block an attempt's COMPLETED transition.
type InterpretationGenerator interface {
	GenerateNarrative(ctx context.Context, input InterpretationInput) (string, error)
}
