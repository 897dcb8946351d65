// Package suggest asks a generative model for related categories or brands
// while the shopper types. Failures never reach the caller: they yield an
// empty list.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

const promptTemplate = `O usuário está procurando por: "%s". Como assistente de compras de supermercado, sugira 3 categorias de produtos ou marcas específicas que podem interessar a ele. Retorne em JSON.`

// Suggester returns shopping suggestions for a free-text query.
type Suggester interface {
	Suggest(ctx context.Context, query string) []string
}

// Noop is used when no model is configured.
type Noop struct{}

func (Noop) Suggest(context.Context, string) []string { return []string{} }

// generator is the slice of the genai client used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models generator
	model  string
	log    *zap.Logger
}

// NewGemini connects to the Gemini API with apiKey.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newGemini(client.Models, model, log), nil
}

func newGemini(g generator, model string, log *zap.Logger) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{models: g, model: model, log: log}
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
}

func (g *Gemini) Suggest(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(fmt.Sprintf(promptTemplate, query)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	})
	if err != nil {
		g.log.Warn("suggestion request failed", zap.String("query", query), zap.Error(err))
		return []string{}
	}

	suggestions, err := parse(responseText(resp))
	if err != nil {
		g.log.Warn("unreadable suggestion response", zap.String("query", query), zap.Error(err))
		return []string{}
	}
	return suggestions
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		break
	}
	return sb.String()
}

func parse(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}
	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(body.Suggestions))
	for _, s := range body.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
