package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
)

const assignmentColumns = `
	id, submitter_id, title, description, file_path, status,
	class_id, deadline, allow_late, created_at, edited_at
`

type AssignmentRepository struct {
	db Querier
}

func NewAssignmentRepository(db Querier) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type CreateAssignmentInput struct {
	SubmitterID uuid.UUID
	Title       string
	Description *string
	FilePath    string
	ClassID     *uuid.UUID
	Deadline    *time.Time
	AllowLate   bool
}

func (r *AssignmentRepository) Create(ctx context.Context, input *CreateAssignmentInput) (*domain.Assignment, error) {
	query := `
INSERT INTO assignments
	(id, submitter_id, title, description, file_path, status,
	 class_id, deadline, allow_late, created_at, edited_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING` + assignmentColumns

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID: %w", err)
	}

	var a domain.Assignment
	err = pgxscan.Get(ctx, r.db, &a, query,
		id,
		input.SubmitterID,
		input.Title,
		input.Description,
		input.FilePath,
		domain.StatusSubmitted,
		input.ClassID,
		input.Deadline,
		input.AllowLate,
		time.Now(),
	)
	if err != nil {
		return nil, handleError(err)
	}
	return &a, nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	query := `SELECT` + assignmentColumns + `FROM assignments WHERE id = $1`

	var a domain.Assignment
	if err := pgxscan.Get(ctx, r.db, &a, query, id); err != nil {
		return nil, handleError(err)
	}
	return &a, nil
}

func (r *AssignmentRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]*domain.Assignment, error) {
	query := `
SELECT` + assignmentColumns + `
FROM assignments
WHERE submitter_id = $1
ORDER BY created_at DESC
`
	var assignments []*domain.Assignment
	if err := pgxscan.Select(ctx, r.db, &assignments, query, submitterID); err != nil {
		return nil, handleError(err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Assignment, error) {
	query := `
SELECT` + assignmentColumns + `
FROM assignments
WHERE status = ANY($1)
ORDER BY created_at DESC
`
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = s.String()
	}

	var assignments []*domain.Assignment
	if err := pgxscan.Select(ctx, r.db, &assignments, query, raw); err != nil {
		return nil, handleError(err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) ListAll(ctx context.Context) ([]*domain.Assignment, error) {
	query := `SELECT` + assignmentColumns + `FROM assignments ORDER BY created_at DESC`

	var assignments []*domain.Assignment
	if err := pgxscan.Select(ctx, r.db, &assignments, query); err != nil {
		return nil, handleError(err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM assignments GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, handleError(err)
		}
		counts[domain.Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return counts, nil
}

// Transition is one atomic workflow step: an optional audit review plus a
// conditional status update. Nothing is applied unless the assignment is
// still in the expected From status.
type Transition struct {
	AssignmentID uuid.UUID
	From         []domain.Status
	To           domain.Status
	FilePath     *string
	Review       *domain.Review
}

// ApplyTransition runs the transition in a single transaction. A
// concurrent transition that moved the assignment out of From rolls
// everything back and surfaces ErrStaleState.
func (r *AssignmentRepository) ApplyTransition(ctx context.Context, t *Transition) (*domain.Assignment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if t.Review != nil {
		if err := insertReview(ctx, tx, t.AssignmentID, t.Review); err != nil {
			return nil, err
		}
	}

	from := make([]string, len(t.From))
	for i, s := range t.From {
		from[i] = s.String()
	}

	query := `
UPDATE assignments
SET status = $1, file_path = COALESCE($2, file_path), edited_at = $3
WHERE id = $4 AND status = ANY($5)
RETURNING` + assignmentColumns

	var a domain.Assignment
	err = pgxscan.Get(ctx, tx, &a, query,
		t.To,
		t.FilePath,
		time.Now(),
		t.AssignmentID,
		from,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.staleOrMissing(ctx, t.AssignmentID)
		}
		return nil, handleError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handleError(err)
	}
	return &a, nil
}

// staleOrMissing distinguishes a vanished assignment from one a
// concurrent transition raced past.
func (r *AssignmentRepository) staleOrMissing(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM assignments WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errdefs.ErrNotFound
		}
		return handleError(err)
	}
	return fmt.Errorf("assignment is now %s: %w", status, errdefs.ErrStaleState)
}

func insertReview(ctx context.Context, tx pgx.Tx, assignmentID uuid.UUID, review *domain.Review) error {
	query := `
INSERT INTO reviews (id, assignment_id, reviewer_id, reviewer_role, rubric, action, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate UUID: %w", err)
	}

	var rubricJSON []byte
	if review.Rubric != nil {
		rubricJSON, err = json.Marshal(review.Rubric)
		if err != nil {
			return fmt.Errorf("failed to marshal rubric: %w", err)
		}
	}

	now := time.Now()
	_, err = tx.Exec(ctx, query,
		id,
		assignmentID,
		review.ReviewerID,
		review.ReviewerRole,
		rubricJSON,
		review.Action,
		review.Comment,
		now,
	)
	if err != nil {
		return handleError(err)
	}

	review.ID = id
	review.AssignmentID = assignmentID
	review.CreatedAt = now
	return nil
}
