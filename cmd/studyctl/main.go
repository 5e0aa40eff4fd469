// AngelaMos | 2026
// main.go

package main

import (
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
)

var version = "dev"

type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Config  string           `help:"Config file path." type:"path" default:"config.yaml"`

	Migrate struct {
		Up     MigrateUpCmd     `cmd:"" help:"Apply all pending migrations."`
		Down   MigrateDownCmd   `cmd:"" help:"Roll back the most recent migration."`
		Status MigrateStatusCmd `cmd:"" help:"Show applied and pending migrations."`
	} `cmd:"" help:"Manage the database schema."`

	User struct {
		Create        UserCreateCmd        `cmd:"" help:"Create an account."`
		ResetPassword UserResetPasswordCmd `cmd:"" help:"Set a new password and end all sessions."`
	} `cmd:"" help:"Manage accounts."`

	Keys struct {
		Generate KeysGenerateCmd `cmd:"" help:"Generate the ES256 signing key pair."`
	} `cmd:"" help:"Manage JWT signing keys."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("studyctl"),
		kong.Description("Operator tooling for the study planner."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "studyctl",
	})

	app := newApp(cli.Config, logger)
	defer app.Close()

	if err := ctx.Run(app); err != nil {
		logger.Error("command failed", "err", err)
		app.Close()
		os.Exit(1)
	}
}
