package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"reviewflow/internal/domain"
)

// ReviewRepository reads the audit trail. Review rows are only ever
// written inside ApplyTransition; there is no update or delete path.
type ReviewRepository struct {
	db Querier
}

func NewReviewRepository(db Querier) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `
	id, assignment_id, reviewer_id, reviewer_role, rubric, action, comment, created_at
`

func (r *ReviewRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Review, error) {
	query := `
SELECT` + reviewColumns + `
FROM reviews
WHERE assignment_id = $1
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return reviews, nil
}

// LatestByAction returns the most recent review with the given action,
// or ErrNotFound when none exists.
func (r *ReviewRepository) LatestByAction(ctx context.Context, assignmentID uuid.UUID, action domain.ReviewAction) (*domain.Review, error) {
	query := `
SELECT` + reviewColumns + `
FROM reviews
WHERE assignment_id = $1 AND action = $2
ORDER BY created_at DESC
LIMIT 1
`
	row := r.db.QueryRow(ctx, query, assignmentID, action)
	review, err := scanReview(row)
	if err != nil {
		return nil, err
	}
	return review, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var rubricJSON []byte

	err := row.Scan(
		&review.ID,
		&review.AssignmentID,
		&review.ReviewerID,
		&review.ReviewerRole,
		&rubricJSON,
		&review.Action,
		&review.Comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, handleError(err)
	}

	if len(rubricJSON) > 0 {
		if err := json.Unmarshal(rubricJSON, &review.Rubric); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rubric: %w", err)
		}
	}
	return &review, nil
}
