package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/target/onboarding-portal/internal/adapters/bcrypthash"
	"github.com/target/onboarding-portal/internal/bootstrap"
	"github.com/target/onboarding-portal/internal/devseed"
)

const (
	schemaTimeout  = 5 * time.Minute
	accountTimeout = 30 * time.Second
)

// dbFlags are the flags shared by the schema commands.
type dbFlags struct {
	timeout     time.Duration
	allowRemote bool
	yes         bool
	seed        bool
}

// parseDBFlags parses the schema command flags. Only db-reset accepts --yes
// and --seed; migrate never touches data so it has no remote guard.
func parseDBFlags(name string, args []string) (dbFlags, error) {
	var f dbFlags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.DurationVar(&f.timeout, "timeout", schemaTimeout, "give up after this long")
	if name != "migrate" {
		fs.BoolVar(&f.allowRemote, "allow-remote", false, "permit a database host that does not look local")
	}
	if name == "db-reset" {
		fs.BoolVar(&f.yes, "yes", false, "skip the confirmation prompt for local databases")
		fs.BoolVar(&f.seed, "seed", false, "seed development data after the reset")
	}
	if err := fs.Parse(args); err != nil {
		return dbFlags{}, err
	}
	if f.timeout <= 0 {
		return dbFlags{}, errors.New("--timeout must be greater than zero")
	}
	return f, nil
}

func runMigrate(ctx context.Context, a *app, args []string) error {
	f, err := parseDBFlags("migrate", args)
	if err != nil {
		return err
	}
	return a.withDB(ctx, f.timeout, a.migrate)
}

func runDBSeed(ctx context.Context, a *app, args []string) error {
	f, err := parseDBFlags("db-seed", args)
	if err != nil {
		return err
	}
	if _, err := a.guardRemote("seed development accounts into", f.allowRemote); err != nil {
		return err
	}
	return a.withDB(ctx, f.timeout, func(ctx context.Context, db *sql.DB) error {
		if err := a.migrate(ctx, db); err != nil {
			return err
		}
		return a.seed(ctx, db)
	})
}

func runDBReset(ctx context.Context, a *app, args []string) error {
	f, err := parseDBFlags("db-reset", args)
	if err != nil {
		return err
	}
	remote, err := a.guardRemote("drop every table in", f.allowRemote)
	if err != nil {
		return err
	}
	if !remote && !f.yes {
		pg := a.cfg.Postgres
		ok, err := a.confirm(fmt.Sprintf("Drop and recreate the public schema of %q on %s:%d?", pg.Name, pg.Host, pg.Port))
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	return a.withDB(ctx, f.timeout, func(ctx context.Context, db *sql.DB) error {
		for _, stmt := range resetStatements(a.cfg.Postgres.User) {
			a.logger.DebugContext(ctx, "reset", "sql", stmt)
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("exec %q: %w", stmt, err)
			}
		}
		a.logger.InfoContext(ctx, "public schema recreated", "database", a.cfg.Postgres.Name)
		if err := a.migrate(ctx, db); err != nil {
			return err
		}
		if f.seed {
			return a.seed(ctx, db)
		}
		return nil
	})
}

// withDB connects, runs fn under a deadline of timeout, then closes the pool.
func (a *app) withDB(ctx context.Context, timeout time.Duration, fn func(context.Context, *sql.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, a.cfg.Postgres, a.logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			a.logger.WarnContext(ctx, "close database", "error", err)
		}
	}()
	return fn(ctx, db)
}

func (a *app) migrate(ctx context.Context, db *sql.DB) error {
	return bootstrap.RunMigrations(ctx, db, a.logger)
}

func (a *app) seed(ctx context.Context, db *sql.DB) error {
	hasher, err := bcrypthash.New(a.cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}
	if err := devseed.Run(ctx, devseed.NewServices(db, hasher), a.logger); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// resetStatements drops and recreates the public schema, granting it back to
// the connecting role.
func resetStatements(user string) []string {
	stmts := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
		"GRANT ALL ON SCHEMA public TO public",
	}
	if user = strings.TrimSpace(user); user != "" && !strings.EqualFold(user, "public") {
		stmts = append(stmts, "GRANT ALL ON SCHEMA public TO "+`"`+strings.ReplaceAll(user, `"`, `""`)+`"`)
	}
	return stmts
}
