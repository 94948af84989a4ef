package tasks_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskpad/internal/log"
	"taskpad/internal/tasks/data"
	"taskpad/internal/tasks/service/servicemock"
	"taskpad/internal/tui/tasks"
)

var errNetwork = errors.New("connection refused")

func task(id, title, description string) data.Task {
	return data.Task{ID: data.ParseID(id), Title: title, Description: description}
}

func sequentialOpIDs() func() ulid.ULID {
	var n byte
	return func() ulid.ULID {
		n++
		var id ulid.ULID
		id[15] = n
		return id
	}
}

func newController(t *testing.T, m *servicemock.MockTaskService) *tasks.Controller {
	t.Helper()

	c, err := tasks.NewController(tasks.ControllerConfig{
		Service: m,
		Logger:  log.Noop,
		NewOpID: sequentialOpIDs(),
	})
	require.NoError(t, err)
	return c
}

// loaded returns a controller whose initial load returned initial.
func loaded(t *testing.T, m *servicemock.MockTaskService, initial ...data.Task) *tasks.Controller {
	t.Helper()

	m.On("List", mock.Anything).Once().Return(initial, nil)
	c := newController(t, m)
	run(t, c, c.Init())
	return c
}

// run executes cmd synchronously and feeds its message back to the controller.
func run(t *testing.T, c *tasks.Controller, cmd tea.Cmd) {
	t.Helper()

	require.NotNil(t, cmd)
	require.True(t, c.Handle(cmd()))
}

func submit(t *testing.T, c *tasks.Controller, title, description string) tea.Cmd {
	t.Helper()

	c.SetTitle(title)
	c.SetDescription(description)
	cmd, err := c.Submit()
	require.NoError(t, err)
	return cmd
}

func TestNewController(t *testing.T) {
	tests := map[string]struct {
		config tasks.ControllerConfig
		expErr bool
	}{
		"valid config should create controller": {
			config: tasks.ControllerConfig{Service: &servicemock.MockTaskService{}, Logger: log.Noop},
		},
		"missing service should fail": {
			config: tasks.ControllerConfig{Logger: log.Noop},
			expErr: true,
		},
		"nil logger should default to noop": {
			config: tasks.ControllerConfig{Service: &servicemock.MockTaskService{}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			c, err := tasks.NewController(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(c)
			} else {
				require.NoError(err)
				require.NotNil(c)
				require.Equal(tasks.ModeCreate, c.Mode())
				require.Empty(c.Tasks())
			}
		})
	}
}

func TestControllerInitialLoad(t *testing.T) {
	tests := map[string]struct {
		mock      func(m *servicemock.MockTaskService)
		expTasks  []data.Task
		expNotice bool
	}{
		"successful load replaces the collection": {
			mock: func(m *servicemock.MockTaskService) {
				m.On("List", mock.Anything).Once().Return([]data.Task{task("1", "A", "a"), task("2", "B", "b")}, nil)
			},
			expTasks: []data.Task{task("1", "A", "a"), task("2", "B", "b")},
		},
		"empty server response keeps an empty collection": {
			mock: func(m *servicemock.MockTaskService) {
				m.On("List", mock.Anything).Once().Return(nil, nil)
			},
			expTasks: []data.Task{},
		},
		"failed load leaves the collection empty": {
			mock: func(m *servicemock.MockTaskService) {
				m.On("List", mock.Anything).Once().Return(nil, errNetwork)
			},
			expTasks:  []data.Task{},
			expNotice: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &servicemock.MockTaskService{}
			test.mock(m)
			c := newController(t, m)

			run(t, c, c.Init())

			assert.Equal(t, test.expTasks, c.Tasks())
			assert.Equal(t, test.expNotice, c.Notice() != "")
			assert.False(t, c.CanRestore())
			assert.Zero(t, c.InFlight())
			m.AssertExpectations(t)
		})
	}
}

func TestControllerInitOnlyLoadsOnce(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))

	assert.Nil(t, c.Init())
	m.AssertNumberOfCalls(t, "List", 1)
}

func TestControllerCreate(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))
	m.On("Create", mock.Anything, data.NewTask{Title: "T", Description: "D"}).Once().Return(task("2", "T", "D"), nil)

	cmd := submit(t, c, "T", "D")

	// Fields are cleared as soon as the request is dispatched.
	assert.Equal(t, tasks.FormState{}, c.Form())
	assert.Equal(t, 1, c.InFlight())

	run(t, c, cmd)

	assert.Equal(t, []data.Task{task("1", "A", "a"), task("2", "T", "D")}, c.Tasks())
	assert.Equal(t, tasks.FormState{}, c.Form())
	assert.Equal(t, tasks.ModeCreate, c.Mode())
	assert.Zero(t, c.InFlight())
	m.AssertExpectations(t)
}

func TestControllerCreateFailure(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))
	before := c.Tasks()
	m.On("Create", mock.Anything, mock.Anything).Once().Return(data.Task{}, errNetwork)

	run(t, c, submit(t, c, "T", "D"))

	assert.Equal(t, before, c.Tasks())
	assert.Equal(t, tasks.FormState{}, c.Form())
	assert.Contains(t, c.Notice(), "create failed")
	assert.True(t, c.CanRestore())
}

func TestControllerSubmitRejectsBlankFields(t *testing.T) {
	tests := map[string]struct {
		title       string
		description string
	}{
		"missing title":       {description: "D"},
		"missing description": {title: "T"},
		"whitespace only":     {title: " ", description: "\t"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &servicemock.MockTaskService{}
			c := loaded(t, m)

			c.SetTitle(test.title)
			c.SetDescription(test.description)
			cmd, err := c.Submit()

			assert.ErrorIs(t, err, data.ErrNotValid)
			assert.Nil(t, cmd)
			assert.Equal(t, test.title, c.Form().Title)
			assert.Equal(t, test.description, c.Form().Description)
			assert.Zero(t, c.InFlight())
			m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestControllerEditAndUpdate(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))
	m.On("Update", mock.Anything, task("1", "A2", "a")).Once().Return(task("1", "A2", "a"), nil)

	c.Edit(c.Tasks()[0])
	require.Equal(t, tasks.ModeUpdate, c.Mode())
	require.Equal(t, "A", c.Form().Title)
	require.Equal(t, "a", c.Form().Description)

	cmd := submit(t, c, "A2", c.Form().Description)

	// The editing reference survives until the server answers.
	assert.Equal(t, tasks.ModeUpdate, c.Mode())
	assert.Empty(t, c.Form().Title)
	assert.Empty(t, c.Form().Description)

	run(t, c, cmd)

	assert.Equal(t, []data.Task{task("1", "A2", "a")}, c.Tasks())
	assert.Nil(t, c.Form().Editing)
	assert.Equal(t, tasks.ModeCreate, c.Mode())
	m.AssertExpectations(t)
}

func TestControllerUpdateKeepsOtherEntries(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"), task("2", "B", "b"), task("3", "C", "c"))
	// The server's representation wins, even when it differs from what was sent.
	m.On("Update", mock.Anything, task("2", "B2", "b2")).Once().Return(task("2", "B2 (server)", "b2"), nil)

	c.Edit(c.Tasks()[1])
	run(t, c, submit(t, c, "B2", "b2"))

	assert.Equal(t, []data.Task{task("1", "A", "a"), task("2", "B2 (server)", "b2"), task("3", "C", "c")}, c.Tasks())
}

func TestControllerUpdateFailure(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))
	before := c.Tasks()
	m.On("Update", mock.Anything, mock.Anything).Once().Return(data.Task{}, errNetwork)

	c.Edit(c.Tasks()[0])
	run(t, c, submit(t, c, "A2", "a"))

	assert.Equal(t, before, c.Tasks())
	require.NotNil(t, c.Form().Editing)
	assert.Equal(t, data.ParseID("1"), c.Form().Editing.ID)
	assert.Empty(t, c.Form().Title)
	assert.Empty(t, c.Form().Description)
	assert.Contains(t, c.Notice(), "update failed")
}

func TestControllerUpdateCompletionKeepsNewerEdit(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"), task("2", "B", "b"))
	m.On("Update", mock.Anything, mock.Anything).Once().Return(task("1", "A2", "a"), nil)

	c.Edit(c.Tasks()[0])
	cmd := submit(t, c, "A2", "a")
	c.Edit(c.Tasks()[1])

	run(t, c, cmd)

	require.NotNil(t, c.Form().Editing)
	assert.Equal(t, data.ParseID("2"), c.Form().Editing.ID)
	assert.Equal(t, "B", c.Form().Title)
}

func TestControllerEditThenCancel(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))

	c.Edit(c.Tasks()[0])
	c.CancelEdit()

	assert.Equal(t, tasks.FormState{}, c.Form())
	assert.Equal(t, tasks.ModeCreate, c.Mode())
	assert.Zero(t, c.InFlight())
	m.AssertNumberOfCalls(t, "List", 1)
	m.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestControllerEditCopiesTask(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))

	original := c.Tasks()[0]
	c.Edit(original)
	original.Title = "changed"

	assert.Equal(t, "A", c.Form().Editing.Title)
}

func TestControllerDelete(t *testing.T) {
	tests := map[string]struct {
		deleteErr error
		expTasks  []data.Task
	}{
		"successful delete removes the entry": {
			expTasks: []data.Task{task("1", "A", "a"), task("3", "C", "c")},
		},
		"failed delete keeps the collection": {
			deleteErr: errNetwork,
			expTasks:  []data.Task{task("1", "A", "a"), task("2", "B", "b"), task("3", "C", "c")},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &servicemock.MockTaskService{}
			c := loaded(t, m, task("1", "A", "a"), task("2", "B", "b"), task("3", "C", "c"))
			m.On("Delete", mock.Anything, data.ParseID("2")).Once().Return(test.deleteErr)

			run(t, c, c.Delete(data.ParseID("2")))

			assert.Equal(t, test.expTasks, c.Tasks())
			// Delete failures have no form input to restore.
			assert.False(t, c.CanRestore())
			m.AssertExpectations(t)
		})
	}
}

func TestControllerRestoreFailedSubmission(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"))
	m.On("Update", mock.Anything, mock.Anything).Once().Return(data.Task{}, errNetwork)

	assert.False(t, c.Restore())

	c.Edit(c.Tasks()[0])
	run(t, c, submit(t, c, "A2", "a2"))

	require.True(t, c.Restore())
	assert.Equal(t, "A2", c.Form().Title)
	assert.Equal(t, "a2", c.Form().Description)
	assert.Equal(t, tasks.ModeUpdate, c.Mode())
	assert.Empty(t, c.Notice())
	assert.False(t, c.CanRestore())
}

func TestControllerCompletionsApplyInArrivalOrder(t *testing.T) {
	m := &servicemock.MockTaskService{}
	c := loaded(t, m, task("1", "A", "a"), task("2", "B", "b"))
	m.On("Create", mock.Anything, mock.Anything).Once().Return(task("3", "C", "c"), nil)
	m.On("Delete", mock.Anything, data.ParseID("1")).Once().Return(nil)
	m.On("Update", mock.Anything, mock.Anything).Once().Return(task("1", "A2", "a"), nil)

	createCmd := submit(t, c, "C", "c")
	deleteCmd := c.Delete(data.ParseID("1"))
	c.Edit(task("1", "A", "a"))
	updateCmd := submit(t, c, "A2", "a")
	assert.Equal(t, 3, c.InFlight())

	// Delete lands first, then the update for the deleted task, then the create.
	run(t, c, deleteCmd)
	run(t, c, updateCmd)
	run(t, c, createCmd)

	assert.Equal(t, []data.Task{task("2", "B", "b"), task("3", "C", "c")}, c.Tasks())
	assert.Zero(t, c.InFlight())
}

func TestControllerUsesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "root")

	m := &servicemock.MockTaskService{}
	m.On("List", mock.MatchedBy(func(got context.Context) bool {
		return got.Value(ctxKey{}) == "root"
	})).Once().Return([]data.Task{}, nil)

	c, err := tasks.NewController(tasks.ControllerConfig{Service: m, Context: ctx})
	require.NoError(t, err)

	run(t, c, c.Init())
	m.AssertExpectations(t)
}

func TestControllerIgnoresUnrelatedMessages(t *testing.T) {
	c := newController(t, &servicemock.MockTaskService{})
	assert.False(t, c.Handle(tea.KeyMsg{}))
}
