package cli

import (
	"io"
	"os"

	"momentum/internal/api"
	"momentum/internal/config"
)

// App carries what every command handler needs: the facade acting as the
// configured user, the configuration and where to print
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	errors      *ErrorHandler
}

// NewApp creates a CLI application around an already built facade
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         out,
		errors:      NewErrorHandler(),
	}
}

func (a *App) printer() *Printer {
	return NewPrinter(a.out, a.config.Display.TimeFormat, a.businessAPI.RunningStatus())
}
