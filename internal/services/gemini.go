package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"alfredoptarigan/hirematch/internal/models"
)

// EmbeddingDimension is fixed by the embedding model. Changing the model
// makes stored CV embeddings incomparable with new ones; there is no
// migration path and that is a documented non-requirement.
const EmbeddingDimension = 768

// AIProvider is the external embedding/completion capability. Provider
// failures surface wrapped in models.ErrProvider; retry and fallback
// policy belong to the callers.
type AIProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int32) (string, error)
}

type geminiProvider struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiProvider(apiKey string) (AIProvider, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiProvider{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateEmbedding implements AIProvider.
func (g *geminiProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate embedding: %v", models.ErrProvider, err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", models.ErrProvider)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements AIProvider.
func (g *geminiProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPrompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate text: %v", models.ErrProvider, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no response generated", models.ErrProvider)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", models.ErrProvider)
	}

	return text, nil
}
