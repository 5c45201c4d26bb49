// Package commands implements the strata command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/telemetry"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/build"
	"go.trai.ch/strata/internal/core/ports"
)

// Application is the part of the app the commands drive.
type Application interface {
	Open(ctx context.Context, path string) (*app.Stage, error)
	Watch(ctx context.Context, st *app.Stage, w ports.Watcher, onReload func(app.ReloadReport, error)) error
}

// LogConfigurer is implemented by loggers whose format can be switched by
// flags.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetQuiet(enable bool)
}

// Deps are the process-wide collaborators of the commands.
type Deps struct {
	Logger   ports.Logger
	Watcher  ports.Watcher
	Settings config.Settings
}

// CLI represents the command line interface for strata.
type CLI struct {
	app      Application
	deps     Deps
	rootCmd  *cobra.Command
	stage    string
	shutdown telemetry.Shutdown
}

// New creates a new CLI instance with the given app.
func New(a Application, deps Deps) *CLI {
	rootCmd := &cobra.Command{
		Use:           "strata",
		Short:         "Inspect how layered scene values resolve over time",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		deps:    deps,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.stage, "stage", "s", config.StageFileName, "Path to the stage file")
	flags.Bool("json", deps.Settings.JSONLogs, "Write logs as JSON")
	flags.BoolP("quiet", "q", false, "Only log warnings and errors")
	flags.Bool("trace", deps.Settings.Trace, "Export trace spans to stderr")
	rootCmd.PersistentPreRunE = c.setup

	rootCmd.AddCommand(c.newPrimsCmd())
	rootCmd.AddCommand(c.newValueCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newSamplesCmd())
	rootCmd.AddCommand(c.newMetadataCmd())
	rootCmd.AddCommand(c.newSpecifierCmd())
	rootCmd.AddCommand(c.newStackCmd())
	rootCmd.AddCommand(c.newClipsCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	jsonLogs, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if lc, ok := c.deps.Logger.(LogConfigurer); ok {
		lc.SetJSON(jsonLogs)
		lc.SetQuiet(quiet)
	}

	trace, _ := cmd.Flags().GetBool("trace")
	if !trace {
		return nil
	}
	shutdown, err := telemetry.Setup(cmd.ErrOrStderr(), build.Version)
	if err != nil {
		return err
	}
	c.shutdown = shutdown
	return nil
}

// Execute runs the root command with the given context. Spans are flushed
// before it returns.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.shutdown != nil {
		if serr := c.shutdown(context.WithoutCancel(ctx)); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) open(cmd *cobra.Command) (*app.Stage, error) {
	return c.app.Open(cmd.Context(), c.stage)
}
