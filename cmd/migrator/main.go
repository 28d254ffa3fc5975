// Command migrator applies the SQL migrations under migrations/.
//
//	migrator [up|down|status|version|redo]   (default: up)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/rs/zerolog/log"

	"employee_backend/internal/app/di"
	"employee_backend/internal/platform/config"
	infradb "employee_backend/internal/platform/db"
	"employee_backend/internal/platform/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := run(context.Background(), command, *dir, flag.Args()[min(1, flag.NArg()):]); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migration failed")
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migrations applied successfully")
}

// run applies command and returns its error; main turns it into a non-zero exit code.
func run(ctx context.Context, command, dir string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger.SetGlobal(l)

	conn, err := infradb.Open(ctx, di.NewDBConfig(cfg.Database), cfg.Database.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer conn.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	sqlDB := stdlib.OpenDBFromPool(conn.Pool)
	defer func() { _ = sqlDB.Close() }()

	if err := goose.Run(command, sqlDB, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
