// Package ai is a thin client for the external prompt-completion service.
// It owns schema validation of the round trip and nothing else: a malformed
// response is a hard failure surfaced to the caller, never coerced, and no
// call is retried automatically.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// RecommendationInput describes the event being planned.
type RecommendationInput struct {
	EventType         string   `json:"eventType" validate:"required"`
	EventDate         string   `json:"eventDate" validate:"required"`
	EventLocation     string   `json:"eventLocation" validate:"required"`
	ServiceNeeds      []string `json:"serviceNeeds" validate:"required,min=1"`
	Budget            string   `json:"budget" validate:"required"`
	AdditionalDetails string   `json:"additionalDetails,omitempty"`
}

// ProviderSuggestion is one ranked recommendation from the service.
type ProviderSuggestion struct {
	ProviderName     string   `json:"providerName" validate:"required"`
	ProviderSkills   []string `json:"providerSkills" validate:"required"`
	SuitabilityScore float64  `json:"suitabilityScore" validate:"min=0,max=100"`
	Reasoning        string   `json:"reasoning" validate:"required"`
}

type recommendationResponse struct {
	RecommendedProviders []ProviderSuggestion `json:"recommendedProviders" validate:"required,dive"`
}

// DescriptionInput seeds a generated event description draft.
type DescriptionInput struct {
	Title     string   `json:"title" validate:"required"`
	EventType string   `json:"eventType" validate:"required"`
	Keywords  []string `json:"keywords,omitempty"`
}

type descriptionResponse struct {
	Description string `json:"description" validate:"required"`
}

const recommendPrompt = `You are an assistant specialized in recommending service providers for events.
Based on the event details, recommend providers with a suitability score (0-100) and reasoning for each.
Respond as a JSON object with a "recommendedProviders" array of objects holding
"providerName", "providerSkills", "suitabilityScore" and "reasoning".`

const describePrompt = `You write short, vivid event descriptions for a marketplace listing.
Respond as a JSON object with a single "description" field of at most 600 characters.`

type completionRequest struct {
	System string          `json:"system"`
	Input  json.RawMessage `json:"input"`
}

// RecommendProviders asks the completion service for ranked provider
// suggestions matching the event attributes.
func (c *Client) RecommendProviders(ctx context.Context, input RecommendationInput) ([]ProviderSuggestion, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid recommendation input: %v", err)
	}

	var out recommendationResponse
	if err := c.complete(ctx, recommendPrompt, input, &out); err != nil {
		return nil, err
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("recommendation service returned a malformed payload: %v", err)
	}
	return out.RecommendedProviders, nil
}

// GenerateEventDescription produces a draft description for an event listing.
func (c *Client) GenerateEventDescription(ctx context.Context, input DescriptionInput) (string, error) {
	if err := validate.Struct(input); err != nil {
		return "", fmt.Errorf("invalid description input: %v", err)
	}

	var out descriptionResponse
	if err := c.complete(ctx, describePrompt, input, &out); err != nil {
		return "", err
	}
	if err := validate.Struct(out); err != nil {
		return "", fmt.Errorf("description service returned a malformed payload: %v", err)
	}
	return out.Description, nil
}

func (c *Client) complete(ctx context.Context, system string, input interface{}, out interface{}) error {
	rawInput, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode request input: %v", err)
	}

	body, err := json.Marshal(completionRequest{System: system, Input: rawInput})
	if err != nil {
		return fmt.Errorf("failed to encode completion request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build completion request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("completion service unavailable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("completion service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode completion response: %v", err)
	}
	return nil
}
