// Command portal-admin manages the onboarding portal's database and accounts
// from a shell: schema migrations, development seed data and role changes
// that would otherwise need an administrator session.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/target/onboarding-portal/config"
	"github.com/target/onboarding-portal/internal/bootstrap"
)

// app carries what every command needs. Prompts read stdin and output goes
// to stdout; both are swappable in tests.
type app struct {
	cfg    config.AppConfig
	logger *slog.Logger
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

// commandTable lists the commands in the order usage prints them.
func commandTable() []command {
	return []command{
		{name: "migrate", summary: "Apply pending schema migrations", run: runMigrate},
		{name: "db-seed", summary: "Migrate, then add the default modules, questions and staff accounts", run: runDBSeed},
		{name: "db-reset", summary: "Drop the public schema, migrate, and optionally seed", run: runDBReset},
		{name: "create-user", summary: "Create an account with an explicit role", run: runCreateUser},
		{name: "set-role", summary: "Change the role of an existing account", run: runSetRole},
		{name: "list-users", summary: "List accounts, optionally filtered by role", run: runListUsers},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commandTable() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:])) //nolint:forbidigo // exit status is the CLI's result
}

func run(ctx context.Context, args []string) int {
	logger := bootstrap.InitLogger()
	if len(args) == 0 {
		printUsage(os.Stderr)
		return 2
	}
	cmd, ok := lookupCommand(args[0])
	if !ok {
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		return 2
	}

	cfg, err := bootstrap.ParseConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		return 1
	}
	bootstrap.SetLogLevel(cfg.Log.SlogLevel())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:    cfg,
		logger: logger,
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.ErrorContext(ctx, "command failed", "command", cmd.name, "error", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	ew := &errWriter{w: tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)}
	ew.printf("Usage: portal-admin <command> [flags]\n\nCommands:\n")
	for _, c := range commandTable() {
		ew.printf("  %s\t%s\n", c.name, c.summary)
	}
	ew.printf("\nRun portal-admin <command> -h for the flags of a command.\n")
	_ = ew.flush()
}

// errWriter keeps the first write error so a block of output is checked once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) flush() error {
	if e.err != nil {
		return e.err
	}
	if tw, ok := e.w.(*tabwriter.Writer); ok {
		return tw.Flush()
	}
	return nil
}
