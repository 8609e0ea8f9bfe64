package domain

import (
	"fmt"

	"reviewflow/internal/errdefs"
)

// DefaultCriteria is the rubric used when none is configured.
var DefaultCriteria = []string{
	"Paper Topic",
	"Academic Research Articles",
	"Annotations",
	"Working Outline",
}

const (
	RubricScoreMin = 0 // Not Completed
	RubricScoreMax = 4 // Exemplary
)

type RubricItem struct {
	Criterion string `json:"criterion"`
	Score     *int   `json:"score"`
	Comment   string `json:"comment,omitempty"`
}

// ValidateRubric checks a submitted rubric against the configured criteria.
// Every criterion must carry exactly one in-range score; anything missing
// fails closed with the offending criterion named in the error.
func ValidateRubric(criteria []string, items []RubricItem) error {
	scored := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Criterion == "" {
			return fmt.Errorf("rubric entry without criterion: %w", errdefs.ErrValidation)
		}
		if scored[item.Criterion] {
			return fmt.Errorf("duplicate rubric entry for %q: %w", item.Criterion, errdefs.ErrValidation)
		}
		if item.Score == nil {
			return fmt.Errorf("missing score for %q: %w", item.Criterion, errdefs.ErrValidation)
		}
		if *item.Score < RubricScoreMin || *item.Score > RubricScoreMax {
			return fmt.Errorf("score for %q out of range: %w", item.Criterion, errdefs.ErrValidation)
		}
		scored[item.Criterion] = true
	}

	for _, criterion := range criteria {
		if !scored[criterion] {
			return fmt.Errorf("missing score for %q: %w", criterion, errdefs.ErrValidation)
		}
	}

	return nil
}
