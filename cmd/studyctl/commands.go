// AngelaMos | 2026
// commands.go

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/carterperez-dev/studyplanner/internal/auth"
	"github.com/carterperez-dev/studyplanner/internal/config"
	"github.com/carterperez-dev/studyplanner/internal/core"
	"github.com/carterperez-dev/studyplanner/internal/migrations"
	"github.com/carterperez-dev/studyplanner/internal/user"
)

var errPasswordMismatch = errors.New("passwords do not match")

// app is bound into every command's Run method.
type app struct {
	configPath   string
	logger       *charmlog.Logger
	out          io.Writer
	readPassword func(fd int) ([]byte, error)
	openDB       func(ctx context.Context) (*core.Database, error)

	db *core.Database
}

func newApp(configPath string, logger *charmlog.Logger) *app {
	a := &app{
		configPath:   configPath,
		logger:       logger,
		out:          os.Stdout,
		readPassword: term.ReadPassword,
	}
	a.openDB = a.connect
	return a
}

func (a *app) connect(ctx context.Context) (*core.Database, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	return core.NewDatabase(ctx, cfg.Database)
}

func (a *app) database(ctx context.Context) (*core.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := a.openDB(ctx)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close() //nolint:errcheck // process is exiting
		a.db = nil
	}
}

// promptPassword reads a password twice without echo.
func (a *app) promptPassword() (string, error) {
	fmt.Fprint(a.out, "Password: ")
	first, err := a.readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(a.out, "Confirm password: ")
	second, err := a.readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if !bytes.Equal(first, second) {
		return "", errPasswordMismatch
	}

	password := string(first)
	if err := core.CheckPasswordLength(password); err != nil {
		return "", err
	}
	return password, nil
}

type MigrateUpCmd struct{}

func (c *MigrateUpCmd) Run(a *app) error {
	ctx := context.Background()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	if err := migrations.Up(ctx, db.DB.DB, db.Dialect()); err != nil {
		return err
	}

	v, err := migrations.Version(ctx, db.DB.DB, db.Dialect())
	if err != nil {
		return err
	}
	a.logger.Info("migrated", "version", v)
	return nil
}

type MigrateDownCmd struct{}

func (c *MigrateDownCmd) Run(a *app) error {
	ctx := context.Background()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	if err := migrations.Down(ctx, db.DB.DB, db.Dialect()); err != nil {
		return err
	}

	v, err := migrations.Version(ctx, db.DB.DB, db.Dialect())
	if err != nil {
		return err
	}
	a.logger.Info("rolled back", "version", v)
	return nil
}

type MigrateStatusCmd struct{}

func (c *MigrateStatusCmd) Run(a *app) error {
	ctx := context.Background()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	return migrations.Status(ctx, db.DB.DB, db.Dialect(), a.logger)
}

type UserCreateCmd struct {
	Email string `required:"" help:"Login email."`
	Name  string `required:"" help:"Display name."`
	Admin bool   `help:"Grant the admin role."`
}

func (c *UserCreateCmd) Run(a *app) error {
	ctx := context.Background()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	svc := user.NewService(user.NewRepository(db.DB))
	exists, err := svc.EmailExists(ctx, c.Email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("an account for %s already exists", c.Email)
	}

	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return err
	}

	role := user.RoleUser
	if c.Admin {
		role = user.RoleAdmin
	}

	u, err := svc.CreateWithRole(ctx, c.Email, hash, c.Name, role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return fmt.Errorf("an account for %s already exists", c.Email)
		}
		return err
	}

	a.logger.Info("user created", "id", u.ID, "email", u.Email, "role", u.Role)
	return nil
}

type UserResetPasswordCmd struct {
	Email string `required:"" help:"Email of the account to reset."`
}

func (c *UserResetPasswordCmd) Run(a *app) error {
	ctx := context.Background()
	db, err := a.database(ctx)
	if err != nil {
		return err
	}

	svc := user.NewService(user.NewRepository(db.DB))
	u, err := svc.GetByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("no account for %s", c.Email)
		}
		return err
	}

	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return err
	}

	if err := svc.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := svc.IncrementTokenVersion(ctx, u.ID); err != nil {
		return err
	}

	a.logger.Info("password reset", "email", u.Email)
	return nil
}

type KeysGenerateCmd struct {
	Private string `default:"keys/private.pem" help:"Private key output path." type:"path"`
	Public  string `default:"keys/public.pem" help:"Public key output path." type:"path"`
	Force   bool   `help:"Overwrite existing keys."`
}

func (c *KeysGenerateCmd) Run(a *app) error {
	if !c.Force {
		for _, p := range []string{c.Private, c.Public} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s exists; pass --force to overwrite", p)
			}
		}
	}

	for _, p := range []string{c.Private, c.Public} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}

	if err := auth.GenerateKeyPair(c.Private, c.Public); err != nil {
		return err
	}

	a.logger.Info("key pair written", "private", c.Private, "public", c.Public)
	return nil
}
