package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func recommendationInput() RecommendationInput {
	return RecommendationInput{
		EventType:     "Wedding",
		EventDate:     "2026-10-12",
		EventLocation: "Accra",
		ServiceNeeds:  []string{"Photography", "Catering"},
		Budget:        "5000",
	}
}

func TestRecommendProviders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendedProviders":[
			{"providerName":"Ama Shoots","providerSkills":["Photography"],"suitabilityScore":92,"reasoning":"matches the requested photography need"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	suggestions, err := client.RecommendProviders(context.Background(), recommendationInput())
	if err != nil {
		t.Fatalf("expected recommendations, got error: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].ProviderName != "Ama Shoots" {
		t.Errorf("unexpected provider name: %s", suggestions[0].ProviderName)
	}
	if suggestions[0].SuitabilityScore != 92 {
		t.Errorf("unexpected score: %v", suggestions[0].SuitabilityScore)
	}
}

func TestRecommendProvidersRejectsMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Score out of range and missing reasoning.
		w.Write([]byte(`{"recommendedProviders":[
			{"providerName":"Ama Shoots","providerSkills":["Photography"],"suitabilityScore":180}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.RecommendProviders(context.Background(), recommendationInput()); err == nil {
		t.Error("expected schema violation to surface as an error")
	}
}

func TestRecommendProvidersRejectsInvalidInput(t *testing.T) {
	client := NewClient("http://unused.invalid", "")
	input := recommendationInput()
	input.ServiceNeeds = nil
	if _, err := client.RecommendProviders(context.Background(), input); err == nil {
		t.Error("expected input without service needs to be rejected before any request")
	}
}

func TestCompletionServiceFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.RecommendProviders(context.Background(), recommendationInput()); err == nil {
		t.Error("expected non-200 status to surface as an error")
	}
}

func TestGenerateEventDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description":"An evening of live highlife music under the stars."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	desc, err := client.GenerateEventDescription(context.Background(), DescriptionInput{
		Title:     "Highlife Night",
		EventType: "Concert",
	})
	if err != nil {
		t.Fatalf("expected description, got error: %v", err)
	}
	if desc == "" {
		t.Error("expected a non-empty description")
	}
}

func TestGenerateEventDescriptionEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.GenerateEventDescription(context.Background(), DescriptionInput{
		Title:     "Highlife Night",
		EventType: "Concert",
	}); err == nil {
		t.Error("expected empty description payload to be rejected")
	}
}
