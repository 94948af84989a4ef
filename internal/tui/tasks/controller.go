package tasks

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"taskpad/internal/log"
	"taskpad/internal/tasks/data"
	"taskpad/internal/tasks/service"
)

// Mode is the form mode, derived only from whether a task is being edited.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "Update"
	}
	return "Create"
}

// Operation names a remote call.
type Operation string

const (
	OpLoad   Operation = "load"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// FormState is the content of the task form.
type FormState struct {
	Title       string
	Description string
	// Editing is the task being updated. Nil means the form creates a new task.
	Editing *data.Task
}

// Mode returns the mode the form is in.
func (f FormState) Mode() Mode {
	if f.Editing != nil {
		return ModeUpdate
	}
	return ModeCreate
}

// Submission is a snapshot of the form taken when it was submitted.
type Submission struct {
	OpID        ulid.ULID
	Op          Operation
	Title       string
	Description string
	Editing     *data.Task
}

// TasksLoadedMsg is delivered when the initial read-all completes.
type TasksLoadedMsg struct {
	OpID  ulid.ULID
	Tasks []data.Task
	Err   error
}

// TaskCreatedMsg is delivered when a create request completes.
type TaskCreatedMsg struct {
	OpID ulid.ULID
	Task data.Task
	Err  error
}

// TaskUpdatedMsg is delivered when an update request completes.
type TaskUpdatedMsg struct {
	OpID ulid.ULID
	ID   data.ID
	Task data.Task
	Err  error
}

// TaskDeletedMsg is delivered when a delete request completes.
type TaskDeletedMsg struct {
	OpID ulid.ULID
	ID   data.ID
	Err  error
}

// ControllerConfig is the configuration for the task list controller.
type ControllerConfig struct {
	Service service.TaskService
	Logger  log.Logger
	// Context is used by every request. It is cancelled when the program exits.
	Context context.Context
	// NewOpID returns the id used to correlate a request with its completion.
	NewOpID func() ulid.ULID
}

func (c *ControllerConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("task service is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Context == nil {
		c.Context = context.Background()
	}

	if c.NewOpID == nil {
		c.NewOpID = ulid.Make
	}

	return nil
}

// Controller owns the task collection and the form, turns form actions into remote
// calls and applies their results. It is driven from the bubbletea event loop: every
// call returns a tea.Cmd running the request, and the resulting message has to be
// passed back through Handle. Completions are applied in arrival order to the
// current state.
type Controller struct {
	svc     service.TaskService
	logger  log.Logger
	ctx     context.Context
	newOpID func() ulid.ULID

	tasks   []data.Task
	form    FormState
	started bool

	pending map[ulid.ULID]Submission
	failed  *Submission
	notice  string
}

// NewController creates a new task list controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{
		svc:     cfg.Service,
		logger:  cfg.Logger.WithValues(log.Kv{"svc": "tasks.Controller"}),
		ctx:     cfg.Context,
		newOpID: cfg.NewOpID,
		tasks:   []data.Task{},
		pending: map[ulid.ULID]Submission{},
	}, nil
}

// Init issues the initial read-all. Only the first call does anything.
func (c *Controller) Init() tea.Cmd {
	if c.started {
		return nil
	}
	c.started = true

	opID := c.newOpID()
	c.pending[opID] = Submission{OpID: opID, Op: OpLoad}
	c.opLogger(OpLoad, opID).Debugf("Dispatching read-all")

	svc, ctx := c.svc, c.ctx
	return func() tea.Msg {
		tasks, err := svc.List(ctx)
		return TasksLoadedMsg{OpID: opID, Tasks: tasks, Err: err}
	}
}

// SetTitle updates the title field.
func (c *Controller) SetTitle(title string) {
	c.form.Title = title
}

// SetDescription updates the description field.
func (c *Controller) SetDescription(description string) {
	c.form.Description = description
}

// Submit sends the form: an update when a task is being edited, a create otherwise.
// A form with a blank field is rejected with data.ErrNotValid and nothing changes.
// Otherwise the fields are cleared right away, before the outcome is known; the
// editing reference only goes away when the update succeeds.
func (c *Controller) Submit() (tea.Cmd, error) {
	if err := data.Validate(c.form.Title, c.form.Description); err != nil {
		return nil, err
	}

	sub := Submission{
		OpID:        c.newOpID(),
		Title:       c.form.Title,
		Description: c.form.Description,
		Editing:     c.form.Editing,
	}

	var cmd tea.Cmd
	svc, ctx := c.svc, c.ctx
	if sub.Editing != nil {
		sub.Op = OpUpdate
		req := data.Task{ID: sub.Editing.ID, Title: sub.Title, Description: sub.Description}
		cmd = func() tea.Msg {
			updated, err := svc.Update(ctx, req)
			return TaskUpdatedMsg{OpID: sub.OpID, ID: req.ID, Task: updated, Err: err}
		}
	} else {
		sub.Op = OpCreate
		req := data.NewTask{Title: sub.Title, Description: sub.Description}
		cmd = func() tea.Msg {
			created, err := svc.Create(ctx, req)
			return TaskCreatedMsg{OpID: sub.OpID, Task: created, Err: err}
		}
	}

	c.pending[sub.OpID] = sub
	c.opLogger(sub.Op, sub.OpID).Debugf("Dispatching %s", sub.Op)

	c.form.Title = ""
	c.form.Description = ""
	c.notice = ""

	return cmd, nil
}

// Edit loads a task into the form and switches to update mode.
func (c *Controller) Edit(task data.Task) {
	t := task
	c.form = FormState{
		Title:       task.Title,
		Description: task.Description,
		Editing:     &t,
	}
}

// CancelEdit clears the form and returns to create mode.
func (c *Controller) CancelEdit() {
	c.form = FormState{}
}

// Delete deletes the task with the given id.
func (c *Controller) Delete(id data.ID) tea.Cmd {
	opID := c.newOpID()
	c.pending[opID] = Submission{OpID: opID, Op: OpDelete}
	c.opLogger(OpDelete, opID).WithValues(log.Kv{"task_id": id.String()}).Debugf("Dispatching delete")

	svc, ctx := c.svc, c.ctx
	return func() tea.Msg {
		err := svc.Delete(ctx, id)
		return TaskDeletedMsg{OpID: opID, ID: id, Err: err}
	}
}

// Handle applies a request completion. It returns false for messages that are not
// completions.
func (c *Controller) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		delete(c.pending, msg.OpID)
		if msg.Err != nil {
			c.reportFailure(OpLoad, msg.OpID, msg.Err, nil)
			return true
		}
		tasks := msg.Tasks
		if tasks == nil {
			tasks = []data.Task{}
		}
		c.tasks = tasks
		c.opLogger(OpLoad, msg.OpID).Infof("Loaded %d tasks", len(tasks))
		return true

	case TaskCreatedMsg:
		sub := c.takePending(msg.OpID)
		if msg.Err != nil {
			c.reportFailure(OpCreate, msg.OpID, msg.Err, sub)
			return true
		}
		c.tasks = data.Append(c.tasks, msg.Task)
		c.opLogger(OpCreate, msg.OpID).Infof("Created task %s", msg.Task.ID)
		return true

	case TaskUpdatedMsg:
		sub := c.takePending(msg.OpID)
		if msg.Err != nil {
			c.reportFailure(OpUpdate, msg.OpID, msg.Err, sub)
			return true
		}
		c.tasks = data.ReplaceByID(c.tasks, msg.ID, msg.Task)
		// The user may have started editing another task while this update was in
		// flight; that newer reference is kept.
		if c.form.Editing != nil && c.form.Editing.ID == msg.ID {
			c.form.Editing = nil
		}
		c.opLogger(OpUpdate, msg.OpID).Infof("Updated task %s", msg.ID)
		return true

	case TaskDeletedMsg:
		delete(c.pending, msg.OpID)
		if msg.Err != nil {
			c.reportFailure(OpDelete, msg.OpID, msg.Err, nil)
			return true
		}
		c.tasks = data.RemoveByID(c.tasks, msg.ID)
		c.opLogger(OpDelete, msg.OpID).Infof("Deleted task %s", msg.ID)
		return true
	}

	return false
}

// Restore puts the input of the last failed submission back into the form.
// It returns false when there is nothing to restore.
func (c *Controller) Restore() bool {
	if c.failed == nil {
		return false
	}
	c.form = FormState{
		Title:       c.failed.Title,
		Description: c.failed.Description,
		Editing:     c.failed.Editing,
	}
	c.failed = nil
	c.notice = ""
	return true
}

// Tasks returns a copy of the local task collection.
func (c *Controller) Tasks() []data.Task {
	out := make([]data.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Form returns the current form state.
func (c *Controller) Form() FormState {
	return c.form
}

// Mode returns the current form mode.
func (c *Controller) Mode() Mode {
	return c.form.Mode()
}

// InFlight returns the number of requests without a completion yet.
func (c *Controller) InFlight() int {
	return len(c.pending)
}

// Notice returns the last failure notice, if any.
func (c *Controller) Notice() string {
	return c.notice
}

// CanRestore reports whether a failed submission can be restored.
func (c *Controller) CanRestore() bool {
	return c.failed != nil
}

func (c *Controller) takePending(opID ulid.ULID) *Submission {
	sub, ok := c.pending[opID]
	if !ok {
		return nil
	}
	delete(c.pending, opID)
	return &sub
}

// reportFailure logs a failed request. Local state is left as it was.
func (c *Controller) reportFailure(op Operation, opID ulid.ULID, err error, sub *Submission) {
	c.opLogger(op, opID).Errorf("Error on %s: %v", op, err)

	c.notice = fmt.Sprintf("%s failed: %v", op, err)
	if sub != nil {
		c.failed = sub
		c.notice += " (ctrl+r restores input)"
	}
}

func (c *Controller) opLogger(op Operation, opID ulid.ULID) log.Logger {
	return c.logger.WithValues(log.Kv{"op": string(op), "op_id": opID.String()})
}
