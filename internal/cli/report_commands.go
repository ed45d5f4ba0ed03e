package cli

import (
	"context"
)

// DefaultTemplateLimit is how many templates the templates command shows
const DefaultTemplateLimit = 5

// ReportCommands handles the reporting subcommands
type ReportCommands struct {
	app *App
}

// NewReportCommands creates the reporting command handlers
func NewReportCommands(app *App) *ReportCommands {
	return &ReportCommands{app: app}
}

// Contributions prints the completion calendar
func (c *ReportCommands) Contributions(ctx context.Context, asJSON bool) error {
	view, err := c.app.businessAPI.Contributions(ctx)
	if err != nil {
		return c.app.errors.Handle("load contributions", err)
	}
	if asJSON {
		return c.app.printer().JSON(view)
	}
	c.app.printer().Contributions(*view)
	return nil
}

// Templates prints the most cloned activities
func (c *ReportCommands) Templates(ctx context.Context, limit int, asJSON bool) error {
	templates, err := c.app.businessAPI.TopTemplates(ctx, limit)
	if err != nil {
		return c.app.errors.Handle("load templates", err)
	}
	if asJSON {
		return c.app.printer().JSON(templates)
	}
	c.app.printer().Templates(templates)
	return nil
}
