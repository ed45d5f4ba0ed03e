package cli

import (
	"context"
	"fmt"
	"strings"
)

// TaskCommands handles the task subcommands
type TaskCommands struct {
	app *App
}

// NewTaskCommands creates the task command handlers
func NewTaskCommands(app *App) *TaskCommands {
	return &TaskCommands{app: app}
}

// Add appends a task: args are the activity id, a MM:SS duration and the name
func (c *TaskCommands) Add(ctx context.Context, args []string) error {
	if err := requireArgs(args, 3, "momentum task add <activity-id> <MM:SS> <name>"); err != nil {
		return c.app.errors.Handle("add task", err)
	}
	task, err := c.app.businessAPI.AddTask(ctx, args[0], strings.Join(args[2:], " "), args[1])
	if err != nil {
		return c.app.errors.Handle("add task", err)
	}
	c.app.printer().Task("Added task", *task)
	return nil
}

// Start starts tracking a task, stopping any other task of its activity
func (c *TaskCommands) Start(ctx context.Context, taskID string) error {
	entry, err := c.app.businessAPI.StartTask(ctx, taskID)
	if err != nil {
		return c.app.errors.Handle("start task", err)
	}
	c.app.printer().TimeEntry("Started", *entry)
	return nil
}

// Stop stops a running task
func (c *TaskCommands) Stop(ctx context.Context, taskID string) error {
	entry, err := c.app.businessAPI.StopTask(ctx, taskID)
	if err != nil {
		return c.app.errors.Handle("stop task", err)
	}
	c.app.printer().TimeEntry("Stopped", *entry)
	return nil
}

// StopEntry stops a specific time entry
func (c *TaskCommands) StopEntry(ctx context.Context, entryID string) error {
	entry, err := c.app.businessAPI.StopTimeEntry(ctx, entryID)
	if err != nil {
		return c.app.errors.Handle("stop time entry", err)
	}
	c.app.printer().TimeEntry("Stopped", *entry)
	return nil
}

// Complete marks a task completed
func (c *TaskCommands) Complete(ctx context.Context, taskID string) error {
	task, err := c.app.businessAPI.CompleteTask(ctx, taskID)
	if err != nil {
		return c.app.errors.Handle("complete task", err)
	}
	c.app.printer().Task("Completed task", *task)
	return nil
}

// Delete removes a task from its activity
func (c *TaskCommands) Delete(ctx context.Context, taskID string) error {
	if err := c.app.businessAPI.DeleteTask(ctx, taskID); err != nil {
		return c.app.errors.Handle("delete task", err)
	}
	fmt.Fprintf(c.app.out, "Deleted task [%s]\n", taskID)
	return nil
}
