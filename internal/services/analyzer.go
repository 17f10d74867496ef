package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	RecommendationInterview = "Proceed to interview"
	RecommendationConsider  = "Consider"
	RecommendationReject    = "Reject"
)

const (
	analysisTemperature     float32 = 0.3
	analysisMaxTokens       int32   = 500
	requirementsTemperature float32 = 0.2
	requirementsMaxTokens   int32   = 200
)

// MatchAssessment is the structured narrative assessment of one CV against
// one job description.
type MatchAssessment struct {
	MatchSummary   string   `json:"match_summary"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Reasoning      string   `json:"reasoning"`
	Recommendation string   `json:"recommendation"`
}

// MatchAnalyzer wraps the completion provider for qualitative assessment.
// Analyze never fails: provider errors and malformed responses degrade to
// a deterministic templated assessment, so a provider outage affects
// quality of results, never availability of the pipeline.
type MatchAnalyzer interface {
	Analyze(ctx context.Context, cvText, jobText string, score float64) *MatchAssessment
	ExtractRequirements(ctx context.Context, jobText string) []string
}

type matchAnalyzer struct {
	provider      AIProvider
	promptBuilder *PromptBuilder
}

func NewMatchAnalyzer(provider AIProvider) MatchAnalyzer {
	return &matchAnalyzer{
		provider:      provider,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements MatchAnalyzer.
func (a *matchAnalyzer) Analyze(ctx context.Context, cvText, jobText string, score float64) *MatchAssessment {
	prompt := a.promptBuilder.BuildMatchAnalysisPrompt(cvText, jobText, score)

	response, err := a.provider.GenerateText(ctx, analyzerSystemPrompt, prompt, analysisTemperature, analysisMaxTokens)
	if err != nil {
		log.Printf("⚠️  Match analysis failed, using fallback: %v\n", err)
		return fallbackAssessment(score, err)
	}

	var assessment MatchAssessment
	if err := parseJSONResponse(response, &assessment); err != nil {
		log.Printf("⚠️  Failed to parse match analysis, using fallback: %v\n", err)
		return fallbackAssessment(score, err)
	}

	normalizeAssessment(&assessment)
	return &assessment
}

// ExtractRequirements implements MatchAnalyzer.
func (a *matchAnalyzer) ExtractRequirements(ctx context.Context, jobText string) []string {
	prompt := a.promptBuilder.BuildRequirementsPrompt(jobText)

	response, err := a.provider.GenerateText(ctx, requirementsSystemPrompt, prompt, requirementsTemperature, requirementsMaxTokens)
	if err != nil {
		log.Printf("⚠️  Requirements extraction failed: %v\n", err)
		return []string{"Requirements extraction failed"}
	}

	var requirements []string
	if err := parseJSONResponse(response, &requirements); err != nil {
		log.Printf("⚠️  Failed to parse requirements: %v\n", err)
		return []string{"Requirements extraction failed"}
	}

	if requirements == nil {
		requirements = []string{}
	}
	return requirements
}

// fallbackAssessment is the templated result used whenever the completion
// provider is unavailable or returns garbage. The recommendation is
// rule-derived from the similarity score alone.
func fallbackAssessment(score float64, cause error) *MatchAssessment {
	recommendation := RecommendationReject
	if score > 0.5 {
		recommendation = RecommendationConsider
	}

	return &MatchAssessment{
		MatchSummary:   fmt.Sprintf("Analysis based on similarity score of %.2f", score),
		Strengths:      []string{"Content analysis unavailable"},
		Gaps:           []string{"Content analysis unavailable"},
		Reasoning:      fmt.Sprintf("Assessment based on similarity score. AI analysis failed: %v", cause),
		Recommendation: recommendation,
	}
}

func normalizeAssessment(assessment *MatchAssessment) {
	if assessment.Strengths == nil {
		assessment.Strengths = []string{}
	}
	if assessment.Gaps == nil {
		assessment.Gaps = []string{}
	}
	if assessment.Recommendation == "" {
		assessment.Recommendation = RecommendationConsider
	}
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
