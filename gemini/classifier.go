// Package gemini implements sitescrape.Classifier with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/prompt"
	"google.golang.org/genai"
)

// DefaultModel is used when NewClassifier is given an empty model name.
const DefaultModel = "gemini-2.5-flash"

// Ensure Classifier implements sitescrape.Classifier at compile time.
var _ sitescrape.Classifier = (*Classifier)(nil)

// Classifier implements sitescrape.Classifier using Google Gemini.
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, model string) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	return &Classifier{client: client, model: model}
}

// Classify sends the classification prompt for c to Gemini and parses the
// answer. A null or empty answer yields a nil Classification.
func (cl *Classifier) Classify(ctx context.Context, c sitescrape.Client) (*sitescrape.Classification, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result, err := cl.client.Models.GenerateContent(ctx, cl.model,
		[]*genai.Content{genai.NewContentFromText(prompt.BuildForClient(c), genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return nil, sitescrape.WrapError(sitescrape.ENETWORK, err, "gemini %s request failed", cl.model)
	}
	if result == nil {
		return nil, sitescrape.Errorf(sitescrape.EINTERNAL, "gemini returned nil result")
	}

	return ParseClassification(result.Text())
}

// BuildConfig returns the GenerateContentConfig for classification calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify organizations into business domains. Respond with a single JSON object and nothing else.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// ParseClassification decodes a model answer. Empty answers, null and {}
// mean the model declined to classify and return nil without error.
func ParseClassification(text string) (*sitescrape.Classification, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" || text == "null" {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINTERNAL, "malformed classification: %v", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var c sitescrape.Classification
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINTERNAL, "malformed classification: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, sitescrape.Errorf(sitescrape.EINTERNAL, "invalid classification: %s", sitescrape.ErrorMessage(err))
	}

	return &c, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
