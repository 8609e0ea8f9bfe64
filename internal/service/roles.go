package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"reviewflow/internal/domain"
	"reviewflow/internal/errdefs"
)

type RoleRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, error)
}

type RoleCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, bool)
	Set(ctx context.Context, ra *domain.RoleAssignment)
}

// RoleDirectory resolves an authenticated identity to its provisioned
// role. Lookups go through the cache; the backing table is read-only to
// this service, so a short TTL is safe.
type RoleDirectory struct {
	repo  RoleRepository
	cache RoleCache
}

func NewRoleDirectory(repo RoleRepository, cache RoleCache) *RoleDirectory {
	return &RoleDirectory{repo: repo, cache: cache}
}

func (d *RoleDirectory) Resolve(ctx context.Context, userID uuid.UUID) (domain.Actor, error) {
	if d.cache != nil {
		if ra, ok := d.cache.Get(ctx, userID); ok {
			return domain.Actor{ID: ra.UserID, Role: ra.Role}, nil
		}
	}

	ra, err := d.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return domain.Actor{}, errdefs.ErrUnauthenticated
		}
		return domain.Actor{}, err
	}

	if d.cache != nil {
		d.cache.Set(ctx, ra)
	}
	return domain.Actor{ID: ra.UserID, Role: ra.Role}, nil
}
