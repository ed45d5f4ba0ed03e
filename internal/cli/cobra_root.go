package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"momentum/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory APIFactory
	out     io.Writer
	config  *config.Config
}

// NewRootCommand creates the root cobra command with global flags. The
// configuration is loaded once flags are parsed; each command then opens a
// session through factory.
func NewRootCommand(loader *config.Loader, factory APIFactory, out io.Writer) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		out:     out,
	}

	root.cmd = &cobra.Command{
		Use:   "momentum",
		Short: "Track timed activities from the command line",
		Long: `Momentum tracks activities: ordered lists of tasks, each with an allotted
duration. Start and stop tasks to record time, complete activities to fill
your contribution calendar, and clone finished activities as templates.

EXAMPLES:
  momentum activity create "Morning routine"       # Create an activity
  momentum task add <activity-id> 5:00 Stretch      # Add a five minute task
  momentum task start <task-id>                     # Start tracking a task
  momentum activity show <activity-id>              # Remaining time and progress
  momentum activity clone <activity-id>             # Reuse an activity as a template
  momentum contributions                            # Completed activities per day

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    MOMENTUM_DB_DRIVER                     sqlite or postgres (default: sqlite)
    MOMENTUM_DB_DIR                        Database directory (default: ~/.momentum)
    MOMENTUM_DB_FILENAME                   Database filename (default: momentum.db)
    MOMENTUM_DB_POSTGRES_URL               Postgres connection url
    MOMENTUM_DB_QUERY_TIMEOUT              Query timeout (default: 10s)
    MOMENTUM_DB_DIR_PERMISSIONS            Database directory mode (default: 0755)

  Validation Configuration:
    MOMENTUM_VALIDATION_NAME_MIN           Min name length (default: 1)
    MOMENTUM_VALIDATION_NAME_MAX           Max name length (default: 100)
    MOMENTUM_VALIDATION_DESCRIPTION_MAX    Max description length (default: 500)
    MOMENTUM_VALIDATION_MAX_MINUTES        Largest minute field of a duration (default: 999)
    MOMENTUM_VALIDATION_MAX_TASK_DURATION  Max task duration (default: 16h39m59s)

  Display Configuration:
    MOMENTUM_DISPLAY_WITH_HOURS            Render HH:MM:SS clocks (default: false)
    MOMENTUM_DISPLAY_RUNNING_STATUS        Running status text (default: running)
    MOMENTUM_DISPLAY_TIME_FORMAT           Time format (default: 2006-01-02 15:04:05)
    MOMENTUM_DISPLAY_LIST_FORMAT           table, json or csv (default: table)

  Application Configuration:
    MOMENTUM_APP_TIMEOUT                   Command timeout (default: 60s)
    MOMENTUM_APP_VERBOSE                   Debug logging (default: false)
    MOMENTUM_APP_LOG_LEVEL                 Log level (default: info)
    MOMENTUM_APP_USER_ID                   Acting user (default: $USER)

  Metrics Configuration:
    MOMENTUM_METRICS_PUSH_URL              Pushgateway url, empty disables pushing
    MOMENTUM_METRICS_JOB                   Pushgateway job (default: momentum_cli)

GETTING HELP:
  momentum [command] --help                # Get help for any specific command
  momentum completion bash                 # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command with the given arguments
func (r *RootCommand) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-driver", "", "Store driver, sqlite or postgres (overrides MOMENTUM_DB_DRIVER)")
	flags.String("db-dir", "", "Database directory (overrides MOMENTUM_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides MOMENTUM_DB_FILENAME)")
	flags.String("postgres-url", "", "Postgres connection url (overrides MOMENTUM_DB_POSTGRES_URL)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides MOMENTUM_DB_QUERY_TIMEOUT)")

	// Validation configuration
	flags.Int("max-minutes", 0, "Largest minute field of a typed duration (overrides MOMENTUM_VALIDATION_MAX_MINUTES)")

	// Display configuration
	flags.Bool("with-hours", false, "Render clocks as HH:MM:SS (overrides MOMENTUM_DISPLAY_WITH_HOURS)")
	flags.String("running-status", "", "Running status text (overrides MOMENTUM_DISPLAY_RUNNING_STATUS)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides MOMENTUM_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug logging (overrides MOMENTUM_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides MOMENTUM_APP_LOG_LEVEL)")
	flags.String("user", "", "Acting user id (overrides MOMENTUM_APP_USER_ID)")

	// Metrics configuration
	flags.String("metrics-push-url", "", "Pushgateway url (overrides MOMENTUM_METRICS_PUSH_URL)")
}

// overridesFromFlags collects the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	o.DBDriver = str("db-driver")
	o.DBDir = str("db-dir")
	o.DBFilename = str("db-filename")
	o.PostgresURL = str("postgres-url")
	o.DBQueryTimeout = dur("db-query-timeout")
	if flags.Changed("max-minutes") {
		v, _ := flags.GetInt("max-minutes")
		o.MaxMinutes = &v
	}
	o.WithHours = boolean("with-hours")
	o.RunningStatus = str("running-status")
	o.Timeout = dur("app-timeout")
	o.Verbose = boolean("verbose")
	o.LogLevel = str("log-level")
	o.UserID = str("user")
	o.PushURL = str("metrics-push-url")
	return o
}

// loadConfig resolves flags > env > defaults into the final configuration
func (r *RootCommand) loadConfig() error {
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	return nil
}

// getAppTimeout returns the configured command timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// run opens a session, runs fn with a timeout-bound context and closes the
// session whatever fn returned
func (r *RootCommand) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) (err error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	session, err := r.factory(ctx, r.config)
	if err != nil {
		return NewErrorHandler().Handle("open store", err)
	}
	defer func() {
		// the command's own deadline may have passed; cleanup gets a fresh one
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if closeErr := session.Close(closeCtx); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", closeErr)
		}
	}()

	return fn(ctx, NewApp(session.API, r.config, cmd.OutOrStdout()))
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.activityCommand(),
		r.taskCommand(),
		r.contributionsCommand(),
		r.templatesCommand(),
	)
}

func (r *RootCommand) activityCommand() *cobra.Command {
	activityCmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"a"},
		Short:   "Create, inspect and clone activities",
	}

	var description string
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).Create(ctx, args, description)
			})
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")

	var filter, format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List activities, newest first",
		Long: `List your activities, newest first.

Filters: all (default), open, completed
Formats: table (default), json, csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).List(ctx, filter, format)
			})
		},
	}
	listCmd.Flags().StringVar(&filter, "filter", "all", "all, open or completed")
	listCmd.Flags().StringVar(&format, "format", "", "table, json or csv (overrides MOMENTUM_DISPLAY_LIST_FORMAT)")

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show [activity-id]",
		Short: "Show an activity with its tasks, remaining time and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).Show(ctx, args[0], asJSON)
			})
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	completeCmd := &cobra.Command{
		Use:   "complete [activity-id]",
		Short: "Complete an activity whose tasks are all completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).Complete(ctx, args[0])
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [activity-id]",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).Delete(ctx, args[0])
			})
		},
	}

	cloneCmd := &cobra.Command{
		Use:   "clone [activity-id]",
		Short: "Create a new activity from an existing one's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewActivityCommands(app).Clone(ctx, args[0])
			})
		},
	}

	activityCmd.AddCommand(createCmd, listCmd, showCmd, completeCmd, deleteCmd, cloneCmd)
	return activityCmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Add, time and complete tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add [activity-id] [MM:SS] [name]",
		Short: "Add a task to an activity",
		Long: `Add a task with an allotted duration to the end of an activity.

The duration is typed as MM:SS, or as digits whose last two are seconds
(130 is 1:30). Fields beyond their limits are clamped.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewTaskCommands(app).Add(ctx, args)
			})
		},
	}

	startCmd := &cobra.Command{
		Use:   "start [task-id]",
		Short: "Start tracking a task",
		Long:  "Start tracking time for a task. Another running task of the same activity is stopped first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewTaskCommands(app).Start(ctx, args[0])
			})
		},
	}

	var byEntry bool
	stopCmd := &cobra.Command{
		Use:   "stop [task-id]",
		Short: "Stop a running task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				if byEntry {
					return NewTaskCommands(app).StopEntry(ctx, args[0])
				}
				return NewTaskCommands(app).Stop(ctx, args[0])
			})
		},
	}
	stopCmd.Flags().BoolVar(&byEntry, "entry", false, "Treat the id as a time entry id")

	completeCmd := &cobra.Command{
		Use:   "complete [task-id]",
		Short: "Complete a task, stopping it if it runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewTaskCommands(app).Complete(ctx, args[0])
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewTaskCommands(app).Delete(ctx, args[0])
			})
		},
	}

	taskCmd.AddCommand(addCmd, startCmd, stopCmd, completeCmd, deleteCmd)
	return taskCmd
}

func (r *RootCommand) contributionsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "contributions",
		Short: "Show completed activities per day over the last year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewReportCommands(app).Contributions(ctx, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func (r *RootCommand) templatesCommand() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Show the activities cloned most often",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, func(ctx context.Context, app *App) error {
				return NewReportCommands(app).Templates(ctx, limit, asJSON)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultTemplateLimit, "How many templates to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
