package models

import (
	"encoding/json"
	"testing"
)

func TestLocationJSONRoundTripString(t *testing.T) {
	var loc Location
	if err := json.Unmarshal([]byte(`"Accra, Ghana"`), &loc); err != nil {
		t.Fatalf("failed to unmarshal string location: %v", err)
	}
	if loc.Freeform != "Accra, Ghana" {
		t.Errorf("expected freeform Accra, Ghana, got %q", loc.Freeform)
	}
	if loc.IsStructured() {
		t.Error("string location should not report structured")
	}

	out, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(out) != `"Accra, Ghana"` {
		t.Errorf("string location did not round-trip, got %s", out)
	}
}

func TestLocationJSONRoundTripStructured(t *testing.T) {
	var loc Location
	in := `{"city":"Accra","country":"Ghana","lat":5.6037,"lng":-0.187}`
	if err := json.Unmarshal([]byte(in), &loc); err != nil {
		t.Fatalf("failed to unmarshal structured location: %v", err)
	}
	if loc.City != "Accra" || loc.Country != "Ghana" {
		t.Errorf("unexpected fields: %+v", loc)
	}
	if !loc.IsStructured() {
		t.Error("object location should report structured")
	}

	out, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var back Location
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("failed to unmarshal round-trip output: %v", err)
	}
	if back != loc {
		t.Errorf("structured location did not round-trip: %+v vs %+v", back, loc)
	}
}

func TestLocationDisplay(t *testing.T) {
	if got := (Location{Freeform: "Lagos"}).Display(); got != "Lagos" {
		t.Errorf("expected Lagos, got %q", got)
	}
	if got := (Location{City: "Accra", Country: "Ghana"}).Display(); got != "Accra, Ghana" {
		t.Errorf("expected Accra, Ghana, got %q", got)
	}
	if got := (Location{City: "Accra"}).Display(); got != "Accra" {
		t.Errorf("expected Accra, got %q", got)
	}
}

func TestAccountID(t *testing.T) {
	organizer := &UserProfile{ID: "acct-1", ProfileType: ProfileTypeOrganizer}
	if organizer.AccountID() != "acct-1" {
		t.Errorf("organizer account id should be the record id, got %s", organizer.AccountID())
	}

	provider := &UserProfile{ID: "prof-9", UserAccountID: "acct-2", ProfileType: ProfileTypeProvider}
	if provider.AccountID() != "acct-2" {
		t.Errorf("provider account id should come from the back-reference, got %s", provider.AccountID())
	}
}

func TestProfileSanitize(t *testing.T) {
	p := &UserProfile{
		Name:     "  Ama Mensah ",
		Username: " AmaShoots ",
		Email:    " Ama@Example.COM ",
		Bio:      " wedding photographer ",
	}
	p.Sanitize()
	if p.Name != "Ama Mensah" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if p.Username != "amashoots" {
		t.Errorf("username not normalized: %q", p.Username)
	}
	if p.Email != "ama@example.com" {
		t.Errorf("email not normalized: %q", p.Email)
	}
}
