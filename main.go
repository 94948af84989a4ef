package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"taskpad/internal/cli"
	"taskpad/internal/config"
	"taskpad/internal/log"
	"taskpad/internal/logs"
	"taskpad/internal/tasks/service/remote"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("taskpad", "Task list client for a tasks HTTP API.")
	app.DefaultEnvars()
	app.Version(Version)
	rootCmd := cli.NewRootCommand(app)

	// Setup commands (registers flags).
	tuiCmd := cli.NewTUICommand(rootCmd, app)
	listCmd := cli.NewListCommand(rootCmd, app)
	addCmd := cli.NewAddCommand(rootCmd, app)
	updateCmd := cli.NewUpdateCommand(rootCmd, app)
	deleteCmd := cli.NewDeleteCommand(rootCmd, app)

	cmds := map[string]cli.Command{
		tuiCmd.Name():    tuiCmd,
		listCmd.Name():   listCmd,
		addCmd.Name():    addCmd,
		updateCmd.Name(): updateCmd,
		deleteCmd.Name(): deleteCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	cfg, err := config.Load(rootCmd.Flags())
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	rootCmd.Config = cfg

	isTUI := cmdName == tuiCmd.Name()

	// Set logger.
	logger, err := getLogger(*rootCmd, isTUI)
	if err != nil {
		return err
	}
	defer logs.Close()
	rootCmd.Logger = logger

	if isTUI {
		if err := config.EnsureConfigFile(rootCmd.ConfigPath); err != nil {
			logger.Warningf("Could not create config file: %v", err)
		}
	}

	svc, err := remote.NewClient(remote.ClientConfig{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create task client: %w", err)
	}
	rootCmd.Service = svc

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger. The TUI owns the terminal so it logs
// to the debug file; the other commands log to stderr only in debug mode.
func getLogger(config cli.RootCommand, isTUI bool) (log.Logger, error) {
	opts := logs.Options{
		Dir:     config.Config.LogDir,
		Format:  config.Config.LogFormat,
		Debug:   config.Config.Debug,
		Version: Version,
	}

	if isTUI {
		logger, err := logs.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		return logger, nil
	}

	if !opts.Debug {
		return log.Noop, nil
	}

	logger := logs.New(config.Stderr, opts)
	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.
	return logger, nil
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
