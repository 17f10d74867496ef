package services

import "fmt"

const (
	analyzerSystemPrompt     = "You are an HR expert analyzing CVs against job descriptions."
	requirementsSystemPrompt = "You are an HR expert extracting job requirements."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchAnalysisPrompt creates the prompt for the qualitative CV/job
// assessment. The model is instructed to answer with strict JSON carrying
// exactly the five assessment fields.
func (pb *PromptBuilder) BuildMatchAnalysisPrompt(cvText, jobText string, score float64) string {
	return fmt.Sprintf(`Analyze this CV against the job description and provide a structured assessment.

JOB DESCRIPTION:
%s

CV CONTENT:
%s

SIMILARITY SCORE: %.2f

Please provide:
1. A brief match summary (1-2 sentences)
2. List of strengths (3-5 key points)
3. List of gaps/weaknesses (2-4 points)
4. Detailed reasoning for the assessment (2-3 sentences)
5. Recommendation: "Proceed to interview", "Consider", or "Reject"

Return your response in the following JSON format:
{
  "match_summary": "...",
  "strengths": ["...", "..."],
  "gaps": ["...", "..."],
  "reasoning": "...",
  "recommendation": "..."
}

Be objective and thorough. Provide specific examples from the CV to justify your assessment.`,
		jobText, cvText, score)
}

// BuildRequirementsPrompt creates the prompt for extracting key technical
// requirements from a job description as a JSON string array.
func (pb *PromptBuilder) BuildRequirementsPrompt(jobText string) string {
	return fmt.Sprintf(`Extract key technical requirements and skills from this job description.
Return only the essential requirements as a list.

JOB DESCRIPTION:
%s

Return as JSON array:
["requirement1", "requirement2", "requirement3"]`,
		jobText)
}
