package cli

import (
	"context"
	"fmt"
	"strings"

	"momentum/internal/api"
	"momentum/internal/errors"
)

// ActivityCommands handles the activity subcommands
type ActivityCommands struct {
	app *App
}

// NewActivityCommands creates the activity command handlers
func NewActivityCommands(app *App) *ActivityCommands {
	return &ActivityCommands{app: app}
}

// Create creates an activity named by the joined args
func (c *ActivityCommands) Create(ctx context.Context, args []string, description string) error {
	name := strings.Join(args, " ")
	activity, err := c.app.businessAPI.CreateActivity(ctx, name, description)
	if err != nil {
		return c.app.errors.Handle("create activity", err)
	}
	fmt.Fprintf(c.app.out, "Created activity: %s [%s]\n", activity.Name, activity.ID)
	return nil
}

// List prints the user's activities, newest first
func (c *ActivityCommands) List(ctx context.Context, filter, format string) error {
	f, err := api.ParseListFilter(filter)
	if err != nil {
		return c.app.errors.Handle("list activities", err)
	}
	if format == "" {
		format = c.app.config.Display.ListFormat
	}
	activities, err := c.app.businessAPI.ListActivities(ctx, f)
	if err != nil {
		return c.app.errors.Handle("list activities", err)
	}
	return c.app.errors.Handle("list activities", c.app.printer().Activities(activities, format))
}

// Show prints one activity with its tasks
func (c *ActivityCommands) Show(ctx context.Context, id string, asJSON bool) error {
	activity, err := c.app.businessAPI.GetActivity(ctx, id)
	if err != nil {
		return c.app.errors.Handle("show activity", err)
	}
	if asJSON {
		return c.app.printer().JSON(activity)
	}
	c.app.printer().Activity(*activity)
	return nil
}

// Complete marks an activity completed once all its tasks are
func (c *ActivityCommands) Complete(ctx context.Context, id string) error {
	activity, err := c.app.businessAPI.CompleteActivity(ctx, id)
	if err != nil {
		return c.app.errors.Handle("complete activity", err)
	}
	fmt.Fprintf(c.app.out, "Completed activity: %s [%s]\n", activity.Name, activity.ID)
	return nil
}

// Delete hides an activity
func (c *ActivityCommands) Delete(ctx context.Context, id string) error {
	if err := c.app.businessAPI.DeleteActivity(ctx, id); err != nil {
		return c.app.errors.Handle("delete activity", err)
	}
	fmt.Fprintf(c.app.out, "Deleted activity [%s]\n", id)
	return nil
}

// Clone copies an activity's tasks into a new uncompleted activity
func (c *ActivityCommands) Clone(ctx context.Context, id string) error {
	clone, err := c.app.businessAPI.CloneActivity(ctx, id)
	if err != nil {
		return c.app.errors.Handle("clone activity", err)
	}
	fmt.Fprintf(c.app.out, "Cloned activity: %s [%s] with %d tasks\n", clone.Name, clone.ID, len(clone.Tasks))
	return nil
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return errors.NewInvalidInputError("arguments", strings.Join(args, " "), "usage: "+usage)
	}
	return nil
}
