package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
	"vscodeconfigurator/internal/logger"
	"vscodeconfigurator/internal/runner"
	"vscodeconfigurator/internal/templates"
	"vscodeconfigurator/internal/toolchain"
)

// Version is the build version, set with
// -ldflags "-X vscodeconfigurator/cmd.Version=1.2.3".
var Version = "dev"

// app carries what every command needs for one invocation: the parsed
// global flags, the console, the user configuration and the template
// source. It is created fresh for each run.
type app struct {
	// Global flags
	debug         bool
	configPath    string
	templatesPath string

	console *logger.Console
	cfg     config.Config
	source  templates.Source
	runner  runner.Runner

	// consoleOptions replaces the terminal console, used by tests.
	consoleOptions *logger.Options

	// stdout receives help, completion and version output when set.
	stdout io.Writer

	// started is set once argument parsing succeeded and a command body
	// began to run. Errors seen before that are argument errors.
	started bool
}

// setup runs before any command. It creates the console, loads the
// configuration and picks the template source.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Set up the console (verbose if --debug is true)
	if a.consoleOptions != nil {
		opts := *a.consoleOptions
		opts.Debug = a.debug
		a.console = logger.NewWithOptions(opts)
	} else {
		a.console = logger.New(a.debug)
	}

	if a.runner == nil {
		a.runner = runner.New(a.console)
	}

	// --config wins over the environment and the default location
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		a.started = true
		return err
	}
	a.cfg = cfg
	a.console.Debug("Configuration: %s\n", path)

	// --templates wins over the templates entry of the config file
	templatesPath := a.templatesPath
	if templatesPath == "" {
		templatesPath = cfg.Templates
	}
	source, err := templates.Resolve(templatesPath)
	if err != nil {
		a.started = true
		return err
	}
	a.source = source
	a.console.Debug("Templates: %s\n", source.Describe())

	return nil
}

// run wraps a command body so errors it returns are not mistaken for
// argument errors.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a.started = true
		return fn(cmd, args)
	}
}

// materializer returns a template materializer bound to the template source.
func (a *app) materializer(ctx context.Context, force bool) (*templates.Materializer, error) {
	fsys, err := a.source.FS(ctx)
	if err != nil {
		return nil, err
	}
	return &templates.Materializer{FS: fsys, Console: a.console, Force: force}, nil
}

// newToolchain returns a toolchain that applies the overwrite policy of m.
func (a *app) newToolchain(m *templates.Materializer) *toolchain.Toolchain {
	return toolchain.New(a.runner, a.console, m)
}

// requireSubcommand prints the help of a group command invoked without a
// sub-command and fails.
func (a *app) requireSubcommand(cmd *cobra.Command, args []string) error {
	_ = cmd.Help()
	return clierror.New(clierror.NoSubcommandProvided, "No subcommand was provided.")
}

// newRootCmd builds the command tree for a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vscodeconfigurator",                                   // The name of the CLI tool
		Short: "Bootstrap C# and Rust projects pre-wired for VS Code", // Short description shown in help output
		Long: "vscodeconfigurator creates C# solutions and Rust workspaces with a ready to use\n" +
			".vscode directory, and registers projects added later in the VS Code tasks.",

		// PersistentPreRunE runs before any subcommand. It sets up the console
		// based on the debug flag and loads the configuration.
		PersistentPreRunE: a.setup,
		RunE:              a.run(a.requireSubcommand),
		Args:              cobra.NoArgs,

		// Errors are reported by execute with the error banner.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// The `completions` command replaces cobra's default `completion`.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if a.stdout != nil {
		rootCmd.SetOut(a.stdout)
	}
	// Unknown or malformed flags are argument errors.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &clierror.ArgumentError{Err: err}
	})

	// Register the global flags before any command is executed.
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to the YAML config file (default $"+config.EnvConfigPath+" or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&a.templatesPath, "templates", "",
		"Templates directory or bundle archive (.zip, .tar.gz, .tar.xz, .7z, ...)")

	rootCmd.AddCommand(newCsharpCmd(a))      // `csharp init` and `csharp add` (csharp.go)
	rootCmd.AddCommand(newRustCmd(a))        // `rust init` and `rust add` (rust.go)
	rootCmd.AddCommand(newCompletionsCmd(a)) // Shell completion scripts
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// execute runs the command line args and returns the process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)

	// Archive sources unpack into a temporary directory.
	if a.source != nil {
		if cerr := a.source.Close(); cerr != nil && a.console != nil {
			a.console.Debug("Failed to clean up templates: %v\n", cerr)
		}
	}

	// The console is missing when parsing failed before setup ran.
	console := a.console
	if console == nil {
		if a.consoleOptions != nil {
			console = logger.NewWithOptions(*a.consoleOptions)
		} else {
			console = logger.New(a.debug)
		}
	}
	defer console.Release()

	if err == nil {
		return 0
	}
	// Quitting the overwrite prompt already said "Quitting...".
	if errors.Is(err, logger.ErrQuit) {
		return 1
	}

	var argErr *clierror.ArgumentError
	if !a.started && !errors.As(err, &argErr) {
		err = &clierror.ArgumentError{Err: err}
	}
	console.WriteErrorExtended(err)
	return 1
}

// Execute parses the command line and runs the selected command.
// It's the entry point for the CLI and exits with status 1 on any error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, &app{}, os.Args[1:])
	stop()

	if code != 0 {
		os.Exit(code)
	}
}
