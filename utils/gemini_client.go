package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/storefront-seeder/models"
	"google.golang.org/api/option"
)

const (
	geminiModel = "gemini-1.5-flash"
	// maxDescriptionRunes keeps generated copy within what the storefront renders on a card
	maxDescriptionRunes = 600
)

// GeminiWriter writes product descriptions with Gemini
type GeminiWriter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiWriter creates a Gemini client. Close it when the run is over.
func NewGeminiWriter(ctx context.Context, apiKey string) (*GeminiWriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.9)
	return &GeminiWriter{client: client, model: model}, nil
}

// Describe asks Gemini for a short Arabic description of product
func (g *GeminiWriter) Describe(ctx context.Context, category models.Category, product models.Product) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(DescriptionPrompt(category, product)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	description := strings.TrimSpace(b.String())
	if description == "" {
		return "", fmt.Errorf("unexpected response format (no text)")
	}
	if r := []rune(description); len(r) > maxDescriptionRunes {
		description = string(r[:maxDescriptionRunes])
	}
	return description, nil
}

// Close releases the Gemini client
func (g *GeminiWriter) Close() error {
	return g.client.Close()
}

// DescriptionPrompt is the instruction sent to Gemini for one product
func DescriptionPrompt(category models.Category, product models.Product) string {
	return fmt.Sprintf(`
Write a product description in Arabic for a luxury perfume shop.
Two sentences, no more than 300 characters, no markdown, no emojis.

Category: %s
Brand: %s
Type: %s
Size: %s
Top notes: %s
Heart notes: %s
Base notes: %s
`, category.Name, product.Brand, product.Type, product.Size,
		strings.Join(product.Notes.Top, ", "),
		strings.Join(product.Notes.Heart, ", "),
		strings.Join(product.Notes.Base, ", "))
}
