package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"taskpad/internal/printer"
	"taskpad/internal/tasks/data"
)

// ListCommand prints every task.
type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all tasks.").Alias("ls")
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	tasks, err := c.rootCmd.Service.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}
	c.rootCmd.logger().Debugf("Listed %d tasks", len(tasks))

	p := printer.New(c.format, c.rootCmd.Stdout)
	if err := p.PrintList(tasks); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}

// AddCommand creates a task.
type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title       string
	description string
	format      string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Create a task.")
	c.Cmd.Flag("title", "Task title.").Short('t').Required().StringVar(&c.title)
	c.Cmd.Flag("description", "Task description.").Short('d').Required().StringVar(&c.description)
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) error {
	if err := data.Validate(c.title, c.description); err != nil {
		return err
	}

	task, err := c.rootCmd.Service.Create(ctx, data.NewTask{Title: c.title, Description: c.description})
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}
	c.rootCmd.logger().Debugf("Created task %s", task.ID)

	p := printer.New(c.format, c.rootCmd.Stdout)
	if err := p.PrintTask(task); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}

// UpdateCommand changes the title or description of a task. Fields that are not
// given keep the value the server has.
type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id          string
	title       *string
	description *string
	format      string
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update a task.")
	c.Cmd.Arg("id", "Task id.").Required().StringVar(&c.id)
	c.title = c.Cmd.Flag("title", "New task title.").Short('t').String()
	c.description = c.Cmd.Flag("description", "New task description.").Short('d').String()
	c.Cmd.Flag("format", "Output format (table, json).").Default(printer.FormatTable).EnumVar(&c.format, printer.FormatTable, printer.FormatJSON)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	if *c.title == "" && *c.description == "" {
		return fmt.Errorf("nothing to update: set --title or --description")
	}

	id := data.ParseID(c.id)

	// The API only takes full updates.
	tasks, err := c.rootCmd.Service.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}
	task, ok := data.FindByID(tasks, id)
	if !ok {
		return fmt.Errorf("task %s: %w", id, data.ErrNotFound)
	}

	if *c.title != "" {
		task.Title = *c.title
	}
	if *c.description != "" {
		task.Description = *c.description
	}
	if err := data.Validate(task.Title, task.Description); err != nil {
		return err
	}

	updated, err := c.rootCmd.Service.Update(ctx, task)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	c.rootCmd.logger().Debugf("Updated task %s", updated.ID)

	p := printer.New(c.format, c.rootCmd.Stdout)
	if err := p.PrintTask(updated); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}

// DeleteCommand removes a task.
type DeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id string
}

// NewDeleteCommand returns the delete command.
func NewDeleteCommand(rootCmd *RootCommand, app *kingpin.Application) *DeleteCommand {
	c := &DeleteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("delete", "Delete a task.").Alias("rm")
	c.Cmd.Arg("id", "Task id.").Required().StringVar(&c.id)

	return c
}

func (c DeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeleteCommand) Run(ctx context.Context) error {
	id := data.ParseID(c.id)
	if err := c.rootCmd.Service.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	return p.PrintMessage(fmt.Sprintf("Deleted task %s", id))
}
