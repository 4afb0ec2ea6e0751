package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements Engine using Google Gemini.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	lang    string
	enhance bool
}

// NewGemini creates a Gemini engine.
func NewGemini(apiKey, modelName, lang string, enhance bool) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		lang:    lang,
		enhance: enhance,
	}, nil
}

// Recognize sends the receipt image with the transcription prompt and returns
// the model's text.
func (g *Gemini) Recognize(ctx context.Context, image []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, _, err := prepareImage(image, contentType, g.enhance)
	if err != nil {
		return "", err
	}

	// genai.ImageData expects the bare format suffix, and prepareImage
	// always yields PNG.
	parts := []genai.Part{
		genai.ImageData("png", data),
		genai.Text(promptFor(g.lang)),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return stripFences(text.String()), nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
