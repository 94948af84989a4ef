package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/tui"
	taskview "taskpad/internal/tui/tasks"
)

// TUICommand runs the interactive task list. It is the default command.
type TUICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewTUICommand returns the tui command.
func NewTUICommand(rootCmd *RootCommand, app *kingpin.Application) *TUICommand {
	c := &TUICommand{rootCmd: rootCmd}
	c.Cmd = app.Command("tui", "Run the interactive task list (default).").Default()
	return c
}

func (c TUICommand) Name() string { return c.Cmd.FullCommand() }

// Run blocks until the program quits or ctx is cancelled.
func (c TUICommand) Run(ctx context.Context) error {
	logger := c.rootCmd.logger()

	ctrl, err := taskview.NewController(taskview.ControllerConfig{
		Service: c.rootCmd.Service,
		Logger:  logger,
		Context: ctx,
	})
	if err != nil {
		return fmt.Errorf("could not create controller: %w", err)
	}

	endpoint := ""
	if c.rootCmd.Config != nil {
		endpoint = c.rootCmd.Config.BaseURL
	}

	logger.Infof("Starting app in TUI mode")
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.rootCmd.Stdin != nil {
		opts = append(opts, tea.WithInput(c.rootCmd.Stdin))
	}
	if c.rootCmd.Stdout != nil {
		opts = append(opts, tea.WithOutput(c.rootCmd.Stdout))
	}
	p := tea.NewProgram(tui.NewAppModel(ctrl, endpoint), opts...)
	if _, err := p.Run(); err != nil {
		// Cancelled from outside (termination signal).
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Infof("TUI exited")

	return nil
}
