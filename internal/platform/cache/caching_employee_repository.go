// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"employee_backend/internal/feature/employee/domain/entity"
	"employee_backend/internal/feature/employee/usecase"
)

// invalidationGuard is how long an invalidated key holds an empty marker.
// A read that started before the write cannot repopulate the key while the marker lives.
const invalidationGuard = 5 * time.Second

// CachingEmployeeRepository decorates an EmployeeRepository with Redis caching.
// Reads by id and full listings are cached; writes invalidate the affected keys.
// Read-through writes use SET NX so they never overwrite an invalidation marker.
type CachingEmployeeRepository struct {
	inner     usecase.EmployeeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.EmployeeRepository = (*CachingEmployeeRepository)(nil)

// NewCachingEmployeeRepository decorates an EmployeeRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "employees".
func NewCachingEmployeeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.EmployeeRepository, namespace string) *CachingEmployeeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "employees"
	}
	return &CachingEmployeeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// Save persists the employee and invalidates its id entry and the listing.
func (c *CachingEmployeeRepository) Save(ctx context.Context, e entity.Employee) (entity.Employee, error) {
	saved, err := c.inner.Save(ctx, e)
	if err != nil {
		return entity.Employee{}, err
	}
	c.invalidate(ctx, saved.ID)
	if e.ID != 0 && e.ID != saved.ID {
		// 削除済みIDへの更新は新しいIDで登録される
		c.invalidate(ctx, e.ID)
	}
	return saved, nil
}

// DeleteByID deletes the employee and invalidates related cache entries.
func (c *CachingEmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := c.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// FindByID checks the cache first then falls back to the database.
// Absent employees are not cached.
func (c *CachingEmployeeRepository) FindByID(ctx context.Context, id int64) (entity.Employee, bool, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var cached entity.Employee
	if c.load(ctx, key, &cached) {
		return cached, true, nil
	}

	e, found, err := c.inner.FindByID(ctx, id)
	if err != nil || !found {
		return e, found, err
	}
	c.store(ctx, key, e)
	return e, true, nil
}

// FindAll checks the cache first then falls back to the database.
func (c *CachingEmployeeRepository) FindAll(ctx context.Context) ([]entity.Employee, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.allKey()
	var cached []entity.Employee
	if c.load(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindByEmail always reads storage so the uniqueness check never sees stale data.
func (c *CachingEmployeeRepository) FindByEmail(ctx context.Context, email string) (entity.Employee, bool, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByNames is not cached.
func (c *CachingEmployeeRepository) FindByNames(ctx context.Context, firstName, lastName string) ([]entity.Employee, error) {
	return c.inner.FindByNames(ctx, firstName, lastName)
}

// load reads key into dst. A corrupted entry is deleted and reported as a miss.
func (c *CachingEmployeeRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key only when the key is absent (best effort).
// An invalidation marker left by a concurrent write makes this a no-op.
func (c *CachingEmployeeRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.SetNX(ctx, key, b, c.ttl).Err()
	}
}

// invalidate replaces the id entry and the listing with short-lived empty markers (best effort).
// load treats an empty value as a miss.
func (c *CachingEmployeeRepository) invalidate(ctx context.Context, id int64) {
	if c.rdb == nil {
		return
	}
	for _, key := range []string{c.idKey(id), c.allKey()} {
		_ = c.rdb.Set(ctx, key, "", invalidationGuard).Err()
	}
}

func (c *CachingEmployeeRepository) idKey(id int64) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingEmployeeRepository) allKey() string {
	return c.namespace + ":all"
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
