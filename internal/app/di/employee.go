// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"employee_backend/internal/feature/employee/adapters"
	"employee_backend/internal/feature/employee/transport/handler"
	"employee_backend/internal/feature/employee/usecase"
	"employee_backend/internal/platform/cache"
	"employee_backend/internal/platform/config"
	"employee_backend/internal/platform/db"
	"employee_backend/internal/platform/metrics"
)

// NewEmployeeRepository creates an EmployeeRepository implementation.
// If Redis is available, the GORM repository is wrapped with a read-through cache.
func NewEmployeeRepository(gdb *gorm.DB, rdb *redis.Client, m *metrics.Metrics, cfg config.CacheConfig) usecase.EmployeeRepository {
	repo := adapters.NewEmployeeGorm(gdb, m)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingEmployeeRepository(rdb, cfg.TTL, repo, cfg.Namespace)
}

// NewEmployeeHandler wires repository, usecase and handler together.
func NewEmployeeHandler(repo usecase.EmployeeRepository) *handler.EmployeeHandler {
	return handler.NewEmployeeHandler(usecase.NewEmployeeUsecase(repo))
}

// NewDBConfig maps application settings onto the connection parameters.
func NewDBConfig(cfg config.DatabaseConfig) db.Config {
	return db.Config{
		User:         cfg.User,
		Password:     cfg.Password,
		Name:         cfg.Name,
		Host:         cfg.Host,
		Port:         cfg.Port,
		SSLMode:      cfg.SSLMode,
		InstanceName: cfg.InstanceName,
		MaxConns:     cfg.MaxConns,
	}
}
