package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/target/onboarding-portal/internal/adapters/bcrypthash"
	redisadapter "github.com/target/onboarding-portal/internal/adapters/redis"
	"github.com/target/onboarding-portal/internal/bootstrap"
	"github.com/target/onboarding-portal/internal/data"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type createUserFlags struct {
	email, name, password string
	role                  domainauth.Role
}

type setRoleFlags struct {
	email string
	role  domainauth.Role
}

type listUsersFlags struct {
	role          *domainauth.Role
	limit, offset int
}

func runCreateUser(ctx context.Context, a *app, args []string) error {
	f, err := parseCreateUserFlags(args)
	if err != nil {
		return err
	}
	req := model.RegisterRequest{Email: f.email, Name: f.name, Password: f.password}
	if err := req.Validate(); err != nil {
		return err
	}
	hasher, err := bcrypthash.New(a.cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}
	hash, err := hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return a.withDB(ctx, accountTimeout, func(ctx context.Context, db *sql.DB) error {
		created, err := data.NewUserRepo(db).Create(ctx, model.NewUser{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
			Role:         f.role,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		a.logger.InfoContext(ctx, "user created", "user_id", created.ID, "role", created.Role)
		_, err = fmt.Fprintf(a.stdout, "Created %s (%s) with id %d\n", created.Email, created.Role.Label(), created.ID)
		return err
	})
}

func runSetRole(ctx context.Context, a *app, args []string) error {
	f, err := parseSetRoleFlags(args)
	if err != nil {
		return err
	}

	return a.withDB(ctx, accountTimeout, func(ctx context.Context, db *sql.DB) error {
		users := data.NewUserRepo(db)
		before, err := users.GetByEmail(ctx, model.NormalizeEmail(f.email))
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		if before.Role == f.role {
			_, err = fmt.Fprintf(a.stdout, "%s is already %s\n", before.Email, before.Role)
			return err
		}
		after, err := users.SetRole(ctx, before.ID, f.role)
		if err != nil {
			return fmt.Errorf("set role: %w", err)
		}
		a.revokeSessions(ctx, after.ID, after.Role)

		a.logger.InfoContext(ctx, "role changed", "user_id", after.ID, "from", before.Role, "to", after.Role)
		_, err = fmt.Fprintf(a.stdout, "%s: %s -> %s\n", after.Email, before.Role, after.Role)
		return err
	})
}

// revokeSessions writes the role-change watermark so sessions carrying an
// earlier role are refused. With Redis disabled they run out their TTL instead.
func (a *app) revokeSessions(ctx context.Context, userID int64, role domainauth.Role) {
	client, err := bootstrap.ConnectRedis(ctx, a.cfg.Redis, a.logger)
	if err != nil {
		a.logger.WarnContext(ctx, "redis unavailable, existing sessions keep the old role until they expire", "error", err)
		return
	}
	if client == nil {
		return
	}
	defer func() { _ = client.Close() }()

	revocations := redisadapter.NewSessionRevocations(client, a.cfg.Auth.SessionTTL)
	if err := revocations.MarkRoleChanged(ctx, userID, domainauth.RoleChange{Role: role, At: time.Now()}); err != nil {
		a.logger.WarnContext(ctx, "record role change", "user_id", userID, "error", err)
	}
}

func runListUsers(ctx context.Context, a *app, args []string) error {
	f, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}
	return a.withDB(ctx, accountTimeout, func(ctx context.Context, db *sql.DB) error {
		users, err := data.NewUserRepo(db).List(ctx, model.UsersListOptions{Role: f.role, Limit: f.limit, Offset: f.offset})
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return printUsers(a.stdout, users)
	})
}

func printUsers(w io.Writer, users []*domainauth.Identity) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "No users found.")
		return err
	}
	ew := &errWriter{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	ew.printf("ID\tEMAIL\tNAME\tROLE\tJOINED\n")
	for _, u := range users {
		ew.printf("%d\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, u.CreatedAt.UTC().Format(time.DateOnly))
	}
	return ew.flush()
}

func parseRoleFlag(raw string) (domainauth.Role, error) {
	role, err := domainauth.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("--role: %w", err)
	}
	return role, nil
}

func parseCreateUserFlags(args []string) (createUserFlags, error) {
	var f createUserFlags
	var role string
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&f.email, "email", "", "email address (required)")
	fs.StringVar(&f.name, "name", "", "display name (required)")
	fs.StringVar(&f.password, "password", "", "initial password, at least 8 characters (required)")
	fs.StringVar(&role, "role", string(domainauth.RoleEmployee), "pending, employee, manager or admin")
	if err := fs.Parse(args); err != nil {
		return createUserFlags{}, err
	}
	if f.email == "" || f.name == "" || f.password == "" {
		return createUserFlags{}, errors.New("--email, --name and --password are required")
	}
	var err error
	if f.role, err = parseRoleFlag(role); err != nil {
		return createUserFlags{}, err
	}
	return f, nil
}

func parseSetRoleFlags(args []string) (setRoleFlags, error) {
	var f setRoleFlags
	var role string
	fs := flag.NewFlagSet("set-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&f.email, "email", "", "email address of the account (required)")
	fs.StringVar(&role, "role", "", "new role: pending, employee, manager or admin (required)")
	if err := fs.Parse(args); err != nil {
		return setRoleFlags{}, err
	}
	if f.email == "" || role == "" {
		return setRoleFlags{}, errors.New("--email and --role are required")
	}
	var err error
	if f.role, err = parseRoleFlag(role); err != nil {
		return setRoleFlags{}, err
	}
	return f, nil
}

func parseListUsersFlags(args []string) (listUsersFlags, error) {
	var f listUsersFlags
	var role string
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&role, "role", "", "only list accounts with this role")
	fs.IntVar(&f.limit, "limit", defaultListLimit, fmt.Sprintf("accounts to list, 1 to %d", maxListLimit))
	fs.IntVar(&f.offset, "offset", 0, "accounts to skip")
	if err := fs.Parse(args); err != nil {
		return listUsersFlags{}, err
	}
	if f.limit < 1 || f.limit > maxListLimit {
		return listUsersFlags{}, fmt.Errorf("--limit must be between 1 and %d", maxListLimit)
	}
	if f.offset < 0 {
		return listUsersFlags{}, errors.New("--offset must not be negative")
	}
	if role != "" {
		r, err := parseRoleFlag(role)
		if err != nil {
			return listUsersFlags{}, err
		}
		f.role = &r
	}
	return f, nil
}
