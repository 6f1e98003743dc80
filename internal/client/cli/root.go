package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("command failed")

// NewRootCmd builds the fisikaap command tree over app. With no subcommand
// it starts the interactive shell.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "fisikaap",
		Short:         "Physics learning client: topics, simulations, XP and challenges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Start(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Shell(cmd.Context())
			return nil
		},
	}

	// Parsed by the config package; declared so cobra accepts them.
	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "path to JSON config file")
	pf.StringP("server", "a", "", "backend base URL")
	pf.StringP("database", "d", "", "local database path")
	pf.IntP("interval", "i", 0, "online check interval (seconds)")
	pf.DurationP("timeout", "t", 0, "per-request HTTP timeout")
	pf.StringP("log-level", "l", "", "log level")
	pf.Bool("debug", false, "dump HTTP traffic")

	for _, c := range app.commands() {
		c := c
		root.AddCommand(&cobra.Command{
			Use:   c.usage,
			Short: c.short,
			Args: func(cmd *cobra.Command, args []string) error {
				if !c.acceptsArgs(len(args)) {
					return usageError(c)
				}
				return nil
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.exec(cmd.Context(), c, args); err != nil {
					return errReported
				}
				return nil
			},
		})
	}

	return root
}

// Shell runs the interactive REPL on stdin, with the connectivity watcher
// in the background.
func (a *App) Shell(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx)

	a.println("Welcome to fisikaap (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Execute runs the command tree and reports whether it succeeded. Failures
// have already been printed.
func Execute(ctx context.Context, app *App, args []string) bool {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(app.out)
	root.SetErr(os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			app.println(err.Error())
		}
		return false
	}
	return true
}
