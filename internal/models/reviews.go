package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Review targets either a user profile or an event. Reviewer identity is
// snapshotted at write time. A reviewer may review the same entity more than
// once; only self-reviews are rejected.
type Review struct {
	ID             string    `bson:"_id" json:"id"`
	ReviewerID     string    `bson:"reviewer_id" json:"reviewerUserAccountId"`
	ReviewerName   string    `bson:"reviewer_name" json:"reviewerName"`
	ReviewerAvatar string    `bson:"reviewer_avatar" json:"reviewerAvatar"`
	EntityID       string    `bson:"entity_id" json:"reviewedEntityId"`
	EntityType     string    `bson:"entity_type" json:"reviewedEntityType"`
	Rating         int       `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment        string    `bson:"comment" json:"comment"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

func (r *Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.ReviewerID == "" {
		return fmt.Errorf("reviewer id is required")
	}
	if r.EntityID == "" {
		return fmt.Errorf("reviewed entity id is required")
	}
	if r.EntityType != "user" && r.EntityType != "event" {
		return fmt.Errorf("unsupported entity type: %s", r.EntityType)
	}
	if r.ReviewerID == r.EntityID {
		return fmt.Errorf("you cannot review yourself")
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// ReviewSummary is the aggregate rendered on profile and event pages.
// Distribution holds percentages per star bucket, five stars first.
type ReviewSummary struct {
	Average      float64    `json:"average"`
	Total        int        `json:"total"`
	Distribution [5]float64 `json:"distribution"`
}

// Summarize computes the rating aggregate for a raw review list. The average
// is rounded to one decimal place and each bucket percentage to two. An empty
// input yields the all-zero summary.
func Summarize(reviews []*Review) ReviewSummary {
	summary := ReviewSummary{}
	if len(reviews) == 0 {
		return summary
	}

	var sum int
	var counts [5]int
	for _, r := range reviews {
		if r == nil || r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum += r.Rating
		counts[5-r.Rating]++
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return summary
	}

	summary.Total = total
	summary.Average = math.Round(float64(sum)/float64(total)*10) / 10
	for i, c := range counts {
		summary.Distribution[i] = math.Round(float64(c)/float64(total)*100*100) / 100
	}
	return summary
}
