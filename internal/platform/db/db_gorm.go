// Package db はPostgreSQLへの接続とGORMの初期化を行います。
package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"employee_backend/internal/feature/employee/domain/entity"
)

// retryInterval は接続リトライの間隔です。
const retryInterval = 3 * time.Second

// slowQueryThreshold を超えたクエリは警告ログに出力されます。
const slowQueryThreshold = 200 * time.Millisecond

// Config holds PostgreSQL connection parameters.
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string
	MaxConns     int32
}

// Conn bundles the GORM handle and the pgx pool it runs on.
type Conn struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

// Close closes the underlying pool.
func (c *Conn) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// BuildDSN はpostgres URL形式のDSNを生成します。
// InstanceName が設定されている場合は Cloud SQL の Unix ソケット（/cloudsql/<instance>）を優先します。
func BuildDSN(cfg Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Path:   "/" + cfg.Name,
	}
	q := url.Values{}
	if cfg.InstanceName != "" {
		q.Set("host", path.Join("/cloudsql", cfg.InstanceName))
	} else {
		u.Host = net.JoinHostPort(cfg.Host, cfg.Port)
	}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectWithRetry はtimeoutに達するまでopenerを繰り返し呼び出します。
// 次のリトライがtimeoutを超える場合は、最後のエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Warn().Err(err).Msg("DB connect failed, retrying...")
		time.Sleep(retryInterval)
	}
}

// zerologWriter forwards GORM log lines to zerolog.
type zerologWriter struct {
	l zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.l.Warn().Msgf(format, args...)
}

// NewGormLogger はGORMのログをzerolog経由で出力するロガーを生成します。
// 見つからないレコードは正常系のためログに出しません。
func NewGormLogger(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(zerologWriter{l: l.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Open はpgxpoolを作成し、その上にGORMを構築します。
// ユニーク制約違反の制約名を判定できるよう、TranslateError は使わず pgconn.PgError をそのまま返します。
func Open(ctx context.Context, cfg Config, timeout time.Duration) (*Conn, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	var pool *pgxpool.Pool
	opener := func(string) (*gorm.DB, error) {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, err
		}
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(p)}), &gorm.Config{Logger: NewGormLogger(log.Logger)})
		if err != nil {
			p.Close()
			return nil, err
		}
		pool = p
		return gdb, nil
	}

	gdb, err := ConnectWithRetry(poolCfg.ConnString(), timeout, opener)
	if err != nil {
		return nil, err
	}
	return &Conn{Gorm: gdb, Pool: pool}, nil
}

// Migrate creates or updates the employee table from the entity definition.
// 本番のスキーマは migrations/ のSQLで管理し、これはローカル開発向けです。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if err := db.AutoMigrate(&entity.Employee{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
