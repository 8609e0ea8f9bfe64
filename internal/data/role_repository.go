package data

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"reviewflow/internal/domain"
)

// RoleRepository reads role assignments. Rows are provisioned by the
// external account system; this service never writes them.
type RoleRepository struct {
	db Querier
}

func NewRoleRepository(db Querier) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, error) {
	query := `
SELECT user_id, role, class_id, created_at
FROM role_assignments
WHERE user_id = $1
`
	var ra domain.RoleAssignment
	if err := pgxscan.Get(ctx, r.db, &ra, query, userID); err != nil {
		return nil, handleError(err)
	}
	return &ra, nil
}
