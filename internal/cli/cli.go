package cli

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"taskpad/internal/config"
	"taskpad/internal/log"
	"taskpad/internal/logs"
	"taskpad/internal/tasks/service"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	ConfigPath string
	BaseURL    string
	Timeout    time.Duration
	TimeoutSet bool
	LogDir     string
	LogFormat  string
	Debug      bool

	// Global instances, set on main after parsing.
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  log.Logger
	Config  *config.Config
	Service service.TaskService
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("config", "Path to the config file.").PlaceHolder(config.GetConfigPath()).StringVar(&c.ConfigPath)
	app.Flag("base-url", "Tasks API address.").PlaceHolder(config.DefaultBaseURL).StringVar(&c.BaseURL)
	app.Flag("timeout", "Per request timeout, 0 disables it.").IsSetByUser(&c.TimeoutSet).DurationVar(&c.Timeout)
	app.Flag("log-dir", "Directory for the TUI debug log.").StringVar(&c.LogDir)
	app.Flag("log-format", "Selects the logger format.").EnumVar(&c.LogFormat, logs.FormatText, logs.FormatJSON)
	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)

	return c
}

// Flags returns the global flags to be layered over the config file.
func (c RootCommand) Flags() config.CLIFlags {
	flags := config.CLIFlags{
		ConfigPath: c.ConfigPath,
		BaseURL:    c.BaseURL,
		LogDir:     c.LogDir,
		LogFormat:  c.LogFormat,
		Debug:      c.Debug,
	}
	if c.TimeoutSet {
		timeout := c.Timeout
		flags.Timeout = &timeout
	}
	return flags
}

func (c RootCommand) logger() log.Logger {
	if c.Logger == nil {
		return log.Noop
	}
	return c.Logger
}
