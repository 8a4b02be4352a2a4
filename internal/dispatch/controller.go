package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/boxbuddy/boxbuddy/internal/model"
)

// Response is the answer to a delete confirmation
type Response int

const (
	// ResponseCancel is the default and performs nothing
	ResponseCancel Response = iota
	// ResponseDelete is the destructive choice
	ResponseDelete
)

func (r Response) String() string {
	if r == ResponseDelete {
		return "delete"
	}
	return "cancel"
}

// RowContext is bound to one box row in a front-end
type RowContext struct {
	Box model.Box
}

// Confirmer asks the user about a destructive action and calls respond
// exactly once, possibly later from another goroutine
type Confirmer func(row RowContext, respond func(Response))

// Notifier receives action progress. Started runs on the goroutine calling
// Handle; Succeeded and Failed run wherever the executor runs done.
type Notifier interface {
	Started(action model.Action, row RowContext)
	Succeeded(action model.Action, row RowContext)
	Failed(action model.Action, row RowContext, err error)
}

// Executor runs a blocking task and then done. done reports the result
// and must run where front-end state may be touched.
type Executor func(task, done func())

// SyncExecutor runs task and done on the calling goroutine
func SyncExecutor(task, done func()) {
	task()
	done()
}

// BackgroundExecutor runs task and done on a new goroutine
func BackgroundExecutor(task, done func()) {
	go func() {
		task()
		done()
	}()
}

// DeliverOn returns an executor that runs task on a new goroutine and
// passes done to deliver, e.g. fyne.Do
func DeliverOn(deliver func(func())) Executor {
	return func(task, done func()) {
		go func() {
			task()
			deliver(done)
		}()
	}
}

type handler func(row RowContext)

// Controller routes actions for a row to their handlers
type Controller struct {
	ctx        context.Context
	dispatcher Dispatcher
	notifier   Notifier
	handlers   map[model.Action]handler

	mu        sync.RWMutex
	confirm   Confirmer
	execute   Executor
	onChanged func()
}

// NewController creates a controller. Without a confirmer every delete is
// cancelled.
func NewController(dispatcher Dispatcher, notifier Notifier) *Controller {
	c := &Controller{
		ctx:        context.Background(),
		dispatcher: dispatcher,
		notifier:   notifier,
		execute:    SyncExecutor,
	}
	c.handlers = map[model.Action]handler{
		model.ActionCreate:           c.handleCreate,
		model.ActionDelete:           c.handleDelete,
		model.ActionUpgrade:          c.handlePerform(model.ActionUpgrade),
		model.ActionOpenTerminal:     c.handlePerform(model.ActionOpenTerminal),
		model.ActionShowApplications: c.handleShowApplications,
	}
	return c
}

// SetConfirmer sets how delete confirmation is asked
func (c *Controller) SetConfirmer(confirm Confirmer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm = confirm
}

// SetExecutor sets how blocking invocations are run
func (c *Controller) SetExecutor(execute Executor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if execute == nil {
		execute = SyncExecutor
	}
	c.execute = execute
}

// SetOnChanged sets the hook called after an action changed the box list
func (c *Controller) SetOnChanged(onChanged func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChanged = onChanged
}

// Handle runs action for the row
func (c *Controller) Handle(action model.Action, row RowContext) {
	h, ok := c.handlers[action]
	if !ok {
		c.notifier.Failed(action, row, &ActionFailedError{
			Action: action,
			Box:    row.Box.Name,
			Detail: fmt.Sprintf("unsupported action %d", int(action)),
		})
		return
	}
	h(row)
}

func (c *Controller) handleCreate(row RowContext) {
	opts := CreateOptions{Name: row.Box.Name, Image: row.Box.Image}
	c.run(model.ActionCreate, row, func(ctx context.Context) error {
		return c.dispatcher.Create(ctx, opts)
	})
}

func (c *Controller) handleDelete(row RowContext) {
	c.mu.RLock()
	confirm := c.confirm
	c.mu.RUnlock()

	if confirm == nil {
		log.Printf("No confirmation available, not deleting %s", row.Box.Name)
		return
	}

	var once sync.Once
	confirm(row, func(resp Response) {
		once.Do(func() {
			if resp != ResponseDelete {
				log.Printf("Delete of %s cancelled", row.Box.Name)
				return
			}
			c.run(model.ActionDelete, row, func(ctx context.Context) error {
				return c.dispatcher.Perform(ctx, model.ActionDelete, row.Box.Name)
			})
		})
	})
}

func (c *Controller) handlePerform(action model.Action) handler {
	return func(row RowContext) {
		c.run(action, row, func(ctx context.Context) error {
			return c.dispatcher.Perform(ctx, action, row.Box.Name)
		})
	}
}

func (c *Controller) handleShowApplications(row RowContext) {
	if err := c.dispatcher.Perform(c.ctx, model.ActionShowApplications, row.Box.Name); err != nil {
		log.Printf("Show applications failed for %s: %v", row.Box.Name, err)
		c.notifier.Failed(model.ActionShowApplications, row, err)
	}
}

// run executes call through the executor and reports the result from done
func (c *Controller) run(action model.Action, row RowContext, call func(ctx context.Context) error) {
	c.mu.RLock()
	execute := c.execute
	onChanged := c.onChanged
	c.mu.RUnlock()

	c.notifier.Started(action, row)

	var err error
	execute(func() {
		err = call(c.ctx)
	}, func() {
		if err != nil {
			c.notifier.Failed(action, row, err)
			return
		}
		c.notifier.Succeeded(action, row)

		if action.ChangesRegistry() && onChanged != nil {
			onChanged()
		}
	})
}
