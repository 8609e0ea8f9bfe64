package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reviewflow/internal/domain"
)

// RoleCache keeps role-assignment lookups in Redis. Only the actor's
// role is cached here, never assignment status: the query views must
// reflect engine state exactly.
type RoleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRoleCache(rdb *redis.Client, ttl time.Duration) *RoleCache {
	return &RoleCache{rdb: rdb, ttl: ttl}
}

func (c *RoleCache) Get(ctx context.Context, userID uuid.UUID) (*domain.RoleAssignment, bool) {
	val, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var ra domain.RoleAssignment
	if err := json.Unmarshal(val, &ra); err != nil {
		return nil, false
	}
	return &ra, true
}

func (c *RoleCache) Set(ctx context.Context, ra *domain.RoleAssignment) {
	data, err := json.Marshal(ra)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(ra.UserID), data, c.ttl)
}

func (c *RoleCache) Delete(ctx context.Context, userID uuid.UUID) {
	c.rdb.Del(ctx, key(userID))
}

func key(userID uuid.UUID) string {
	return "role:" + userID.String()
}
