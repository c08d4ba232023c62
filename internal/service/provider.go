package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tastemap/backend/config"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/types"
)

// ClassificationProvider is the external model behind the classification
// adapter. Any error it returns is a soft failure: the adapter resolves
// it with a local fallback and never propagates it.
type ClassificationProvider interface {
	GenerateDescription(ctx context.Context, dish, cuisine string, dietary []string) (string, error)
	ClassifySentiment(ctx context.Context, text string) (*types.SentimentResult, error)
	ClassifyAttributes(ctx context.Context, name, description string) ([]string, error)
}

const (
	providerTimeout = 12 * time.Second

	// Confidence reported when the large model answers directly.
	providerConfidence = 0.9

	// Minimum usable description length; anything shorter is treated as
	// a failed generation.
	minDescriptionLen = 20

	attributeScoreThreshold = 0.3
)

// HTTPProvider calls a chat-completions endpoint for descriptions and
// sentiment, and a zero-shot classification endpoint for attributes.
type HTTPProvider struct {
	chatURL     string
	zeroShotURL string
	apiKey      string
	model       string
	httpClient  *http.Client
	log         *logger.Logger
}

// NewHTTPProvider creates a new HTTPProvider instance
func NewHTTPProvider(cfg *config.Config, log *logger.Logger) *HTTPProvider {
	return &HTTPProvider{
		chatURL:     cfg.ChatAPIURL,
		zeroShotURL: cfg.ZeroShotAPIURL,
		apiKey:      cfg.ProviderAPIKey,
		model:       cfg.ProviderModel,
		httpClient:  &http.Client{Timeout: providerTimeout},
		log:         log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chat sends a single-turn prompt and returns the model's reply text.
func (p *HTTPProvider) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    p.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.chatURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from chat API")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// GenerateDescription asks the model for a 40-60 word dish description.
func (p *HTTPProvider) GenerateDescription(ctx context.Context, dish, cuisine string, dietary []string) (string, error) {
	dietaryFocus := strings.Join(dietary, ", ")
	if dietaryFocus == "" {
		dietaryFocus = "any diet"
	}

	prompt := fmt.Sprintf(`Write a delicious and appealing description of the %s dish '%s'
for someone who follows %s. Focus on flavors, ingredients, and what makes this dish special.
Keep the description between 40-60 words and make it mouth-watering.`, cuisine, dish, dietaryFocus)

	text, err := p.chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(text) < minDescriptionLen {
		return "", fmt.Errorf("generated description too short (%d chars)", len(text))
	}
	return text, nil
}

// ClassifySentiment asks the model for a one-word sentiment label.
func (p *HTTPProvider) ClassifySentiment(ctx context.Context, text string) (*types.SentimentResult, error) {
	prompt := fmt.Sprintf(`Analyze the sentiment of this food feedback text: "%s"
Please respond with only one word: POSITIVE, NEGATIVE, or NEUTRAL.`, text)

	reply, err := p.chat(ctx, prompt)
	if err != nil {
		return nil, err
	}

	label := strings.ToUpper(strings.TrimSpace(reply))
	switch label {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return &types.SentimentResult{Sentiment: label, Confidence: providerConfidence, Details: []string{}}, nil
	}
	return nil, fmt.Errorf("unexpected sentiment reply %q", reply)
}

// ClassifyAttributes runs zero-shot classification over the candidate
// attribute categories and returns up to three display phrases.
func (p *HTTPProvider) ClassifyAttributes(ctx context.Context, name, description string) ([]string, error) {
	payload := map[string]interface{}{
		"inputs": name + ": " + description,
		"parameters": map[string]interface{}{
			"candidate_labels": attributeCategories,
			"multi_label":      true,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.zeroShotURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zero-shot API returned status %d", resp.StatusCode)
	}

	var result struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Labels) == 0 || len(result.Labels) != len(result.Scores) {
		return nil, fmt.Errorf("malformed zero-shot response")
	}

	type scored struct {
		label string
		score float64
	}
	pairs := make([]scored, 0, len(result.Labels))
	for i, label := range result.Labels {
		pairs = append(pairs, scored{label, result.Scores[i]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	var attrs []string
	for _, pair := range pairs {
		if pair.score <= attributeScoreThreshold || len(attrs) == maxAttributes {
			break
		}
		if display, ok := attributeDisplay[pair.label]; ok {
			attrs = append(attrs, display)
		} else {
			attrs = append(attrs, titleCase(pair.label))
		}
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("no attribute above threshold")
	}

	// Pad thin results with a cuisine-flavored extra for display.
	if len(attrs) < 2 {
		text := strings.ToLower(name + " " + description)
		switch {
		case strings.Contains(text, "indian"):
			attrs = append(attrs, "Aromatic Spices")
		case strings.Contains(text, "italian"):
			attrs = append(attrs, "Mediterranean Inspired")
		case strings.Contains(text, "chinese"):
			attrs = append(attrs, "Asian Flavors")
		case strings.Contains(text, "vegetarian"), strings.Contains(text, "vegan"):
			attrs = append(attrs, "Plant-Based Goodness")
		}
	}

	return attrs, nil
}
