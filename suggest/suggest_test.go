package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	text   string
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

func TestGeminiSuggest(t *testing.T) {
	fake := &fakeModels{text: `{"suggestions": ["Laticínios", " Itambé ", "", "Padaria"]}`}
	g := newGemini(fake, "", nil)

	got := g.Suggest(context.Background(), "leite")
	assert.Equal(t, []string{"Laticínios", "Itambé", "Padaria"}, got)
	assert.Equal(t, DefaultModel, fake.model)
	assert.Contains(t, fake.prompt, `procurando por: "leite"`)
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, genai.TypeArray, fake.config.ResponseSchema.Properties["suggestions"].Type)
}

func TestGeminiDegradesToEmpty(t *testing.T) {
	cases := []struct {
		name string
		fake *fakeModels
	}{
		{"request error", &fakeModels{err: errors.New("quota exceeded")}},
		{"not json", &fakeModels{text: "claro! aqui estão"}},
		{"empty body", &fakeModels{text: ""}},
		{"missing field", &fakeModels{text: `{"other": 1}`}},
	}
	for _, tc := range cases {
		g := newGemini(tc.fake, "custom-model", nil)
		got := g.Suggest(context.Background(), "café")
		assert.NotNil(t, got, tc.name)
		assert.Empty(t, got, tc.name)
	}
}

func TestGeminiSkipsBlankQuery(t *testing.T) {
	fake := &fakeModels{text: `{"suggestions": ["x"]}`}
	g := newGemini(fake, "", nil)
	assert.Empty(t, g.Suggest(context.Background(), "   "))
	assert.Empty(t, fake.model, "no request for a blank query")
}

func TestNoop(t *testing.T) {
	var s Suggester = Noop{}
	got := s.Suggest(context.Background(), "arroz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
