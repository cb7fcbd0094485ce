package models

import (
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Average != 0 {
		t.Errorf("expected average 0, got %v", summary.Average)
	}
	if summary.Total != 0 {
		t.Errorf("expected total 0, got %d", summary.Total)
	}
	for i, p := range summary.Distribution {
		if p != 0 {
			t.Errorf("expected bucket %d to be 0, got %v", i, p)
		}
	}
}

func TestSummarizeRounding(t *testing.T) {
	reviews := []*Review{
		{Rating: 5},
		{Rating: 5},
		{Rating: 1},
	}
	summary := Summarize(reviews)

	if summary.Total != 3 {
		t.Errorf("expected total 3, got %d", summary.Total)
	}
	// (5+5+1)/3 = 3.666..., rounded to one decimal
	if summary.Average != 3.7 {
		t.Errorf("expected average 3.7, got %v", summary.Average)
	}
	// Distribution is five-stars-first, percentages rounded to two decimals.
	if summary.Distribution[0] != 66.67 {
		t.Errorf("expected five-star bucket 66.67, got %v", summary.Distribution[0])
	}
	if summary.Distribution[4] != 33.33 {
		t.Errorf("expected one-star bucket 33.33, got %v", summary.Distribution[4])
	}
	for _, i := range []int{1, 2, 3} {
		if summary.Distribution[i] != 0 {
			t.Errorf("expected bucket %d to be 0, got %v", i, summary.Distribution[i])
		}
	}
}

func TestSummarizeSkipsInvalidRatings(t *testing.T) {
	reviews := []*Review{
		{Rating: 4},
		{Rating: 0},
		{Rating: 9},
		nil,
	}
	summary := Summarize(reviews)
	if summary.Total != 1 {
		t.Errorf("expected total 1, got %d", summary.Total)
	}
	if summary.Average != 4.0 {
		t.Errorf("expected average 4.0, got %v", summary.Average)
	}
}

func TestValidateReview(t *testing.T) {
	valid := &Review{ReviewerID: "a", EntityID: "b", EntityType: "user", Rating: 5}
	if err := valid.ValidateReview(); err != nil {
		t.Errorf("expected valid review, got %v", err)
	}

	selfReview := &Review{ReviewerID: "a", EntityID: "a", EntityType: "user", Rating: 5}
	if err := selfReview.ValidateReview(); err == nil {
		t.Error("expected self-review to be rejected")
	}

	badRating := &Review{ReviewerID: "a", EntityID: "b", EntityType: "user", Rating: 6}
	if err := badRating.ValidateReview(); err == nil {
		t.Error("expected rating 6 to be rejected")
	}

	badEntity := &Review{ReviewerID: "a", EntityID: "b", EntityType: "venue", Rating: 3}
	if err := badEntity.ValidateReview(); err == nil {
		t.Error("expected unknown entity type to be rejected")
	}
}
