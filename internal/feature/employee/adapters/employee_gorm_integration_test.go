//go:build integration

package adapters

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamathecxder/randomail"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"employee_backend/internal/feature/employee/domain/entity"
	"employee_backend/internal/feature/employee/usecase"
)

// setupPostgres は使い捨てのPostgreSQLコンテナを起動し、gooseマイグレーションを適用します。
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("employee"),
		postgres.WithUsername("employee"),
		postgres.WithPassword("employee"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	sqlDB := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "../../../../migrations"))

	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb
}

func TestEmployeeGorm_Postgres(t *testing.T) {
	gdb := setupPostgres(t)
	repo := NewEmployeeGorm(gdb, nil)
	ctx := context.Background()

	email := randomail.GenerateRandomEmail()
	saved, err := repo.Save(ctx, entity.NewBuilder().FirstName("Jesus").LastName("Tapia").Email(email).Build())
	require.NoError(t, err)
	assert.Positive(t, saved.ID)

	got, ok, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, got)

	got, ok, err = repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, got)

	for _, style := range []NameQueryStyle{QueryPositional, QueryNamed, QueryRawPositional, QueryRawNamed} {
		found, err := repo.FindByNamesWith(ctx, style, "Jesus", "Tapia")
		require.NoError(t, err, style.String())
		assert.Equal(t, []entity.Employee{saved}, found, style.String())
	}

	// ユニークインデックス違反はErrEmployeeAlreadyExistsに変換される
	_, err = repo.Save(ctx, entity.NewBuilder().FirstName("Other").LastName("Person").Email(email).Build())
	require.ErrorIs(t, err, usecase.ErrEmployeeAlreadyExists)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))
	_, ok, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestEmployeeGorm_Postgres_UpdateOfMissingID は存在しないIDへの更新が新しいIDで登録され、
// IDENTITY の採番と衝突しないことを検証します。
func TestEmployeeGorm_Postgres_UpdateOfMissingID(t *testing.T) {
	gdb := setupPostgres(t)
	repo := NewEmployeeGorm(gdb, nil)
	ctx := context.Background()

	saved, err := repo.Save(ctx, entity.NewBuilder().FirstName("Jesus").LastName("Tapia").Email(randomail.GenerateRandomEmail()).Build())
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, saved.ID))

	stale := saved
	revived, err := repo.Save(ctx, stale)
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, revived.ID, "deleted id must not come back")

	stale.ID = revived.ID + 1 // 次に採番されるはずのID
	stale.Email = randomail.GenerateRandomEmail()
	updated, err := repo.Save(ctx, stale)
	require.NoError(t, err)
	assert.Greater(t, updated.ID, revived.ID)

	// 明示IDで挿入していないので、次の採番と主キーが衝突しない
	next, err := repo.Save(ctx, entity.NewBuilder().FirstName("Maria").LastName("Tapia").Email(randomail.GenerateRandomEmail()).Build())
	require.NoError(t, err)
	assert.Greater(t, next.ID, updated.ID)
}
