package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/focusflowhq/focusflow/internal/cli"
	"github.com/focusflowhq/focusflow/internal/cli/blocks"
	"github.com/focusflowhq/focusflow/internal/cli/recur"
	"github.com/focusflowhq/focusflow/internal/cli/system"
	"github.com/focusflowhq/focusflow/internal/cli/tasks"
	"github.com/focusflowhq/focusflow/internal/constants"
	"github.com/focusflowhq/focusflow/internal/errors"
	"github.com/focusflowhq/focusflow/internal/keyring"
	"github.com/focusflowhq/focusflow/internal/logger"
	"github.com/focusflowhq/focusflow/internal/scheduler"
	"github.com/focusflowhq/focusflow/internal/storage"
	"github.com/focusflowhq/focusflow/internal/storage/postgres"
	"github.com/focusflowhq/focusflow/internal/storage/sqlite"
	"github.com/focusflowhq/focusflow/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring or the ${env} environment variable." default:"${config_path}"`
	Owner   string `help:"Owner id scoping all operations." default:"local"`
	Debug   bool   `help:"Enable debug logging."`

	Init system.InitCmd `cmd:"" help:"Initialize storage."`
	Task struct {
		Add      tasks.TaskAddCmd      `cmd:"" help:"Add a new task."`
		List     tasks.TaskListCmd     `cmd:"" help:"List tasks."`
		Complete tasks.TaskCompleteCmd `cmd:"" help:"Mark a task completed."`
		Cancel   tasks.TaskCancelCmd   `cmd:"" help:"Cancel a task."`
		Delete   tasks.TaskDeleteCmd   `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Block struct {
		Add      blocks.BlockAddCmd      `cmd:"" help:"Add a time block."`
		List     blocks.BlockListCmd     `cmd:"" help:"List time blocks for a day."`
		Complete blocks.BlockCompleteCmd `cmd:"" help:"Mark a time block complete."`
		Delete   blocks.BlockDeleteCmd   `cmd:"" help:"Delete a time block."`
		Rollup   blocks.BlockRollupCmd   `cmd:"" help:"Recompute a task's duration from its blocks."`
	} `cmd:"" help:"Manage time blocks."`
	Recur struct {
		Add    recur.RecurAddCmd    `cmd:"" help:"Create a recurrence rule from a task."`
		List   recur.RecurListCmd   `cmd:"" help:"List recurrence rules."`
		Stop   recur.RecurStopCmd   `cmd:"" help:"Deactivate a recurrence rule."`
		Delete recur.RecurDeleteCmd `cmd:"" help:"Delete a recurrence rule."`
	} `cmd:"" help:"Manage recurring tasks."`
	Generate cli.GenerateCmd `cmd:"" help:"Run the daily recurring-task generation."`
	Cleanup  cli.CleanupCmd  `cmd:"" help:"Delete old completed task instances."`
	ConfigCmd struct {
		SetConnection   system.ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ClearConnection system.ConfigClearConnectionCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" name:"config" help:"Manage database configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Task / time-block sync core with recurring-task generation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
			"env":         constants.ConnectionEnvVar,
		},
	)

	store := selectStore(resolveConfig(CLI.Config))

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store.GetConfigPath()),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &cli.Context{
		Store:     store,
		Engine:    sync.NewEngine(store),
		Scheduler: scheduler.New(store),
		OwnerID:   CLI.Owner,
	}

	command := ctx.Command()
	if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "config") {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

// resolveConfig decides where the database lives: an explicit non-default
// flag wins, then the environment, then the keyring, then the default
// SQLite path.
func resolveConfig(flag string) string {
	if flag != constants.DefaultConfigPath {
		return flag
	}
	if env := os.Getenv(constants.ConnectionEnvVar); env != "" {
		return env
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return connStr
	}
	return flag
}

func selectStore(config string) storage.Provider {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
			os.Exit(1)
		}
		return postgres.New(config)
	}
	return sqlite.NewStore(expandHome(config))
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// configDir picks a writable directory for logs next to the database, or
// the user config directory when the backend is remote.
func configDir(configPath string) string {
	if strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config", constants.AppName)
		}
		return "."
	}
	return filepath.Dir(expandHome(configPath))
}
