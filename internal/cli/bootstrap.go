package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"momentum/internal/api"
	"momentum/internal/config"
	"momentum/internal/logging"
	"momentum/internal/observability"
	"momentum/internal/services"
)

// Session is a facade opened for one command and the cleanup to run after it
type Session struct {
	API   api.BusinessAPI
	close func(ctx context.Context) error
}

// NewSession wraps an already built facade; closeFn may be nil
func NewSession(businessAPI api.BusinessAPI, closeFn func(ctx context.Context) error) *Session {
	return &Session{API: businessAPI, close: closeFn}
}

// Close releases whatever the session opened
func (s *Session) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// APIFactory opens a session once the configuration is final
type APIFactory func(ctx context.Context, cfg *config.Config) (*Session, error)

// NewAPIFactory opens the configured store, makes sure the configured user
// owns a team and wires the services behind the facade. Closing the session
// pushes the command's metrics, when a Pushgateway is configured, and closes
// the store. Logs go to logOut.
func NewAPIFactory(logOut io.Writer) APIFactory {
	if logOut == nil {
		logOut = os.Stderr
	}

	return func(ctx context.Context, cfg *config.Config) (*Session, error) {
		level := cfg.Application.LogLevel
		if cfg.Application.Verbose {
			level = "debug"
		}
		logger := logging.New(logging.Options{Level: level, Console: true, Writer: logOut})
		metrics := observability.New()

		store, err := config.CreateStore(ctx, cfg)
		if err != nil {
			return nil, err
		}

		container := services.NewServiceContainer(services.Dependencies{
			Store:   store,
			Logger:  logger,
			Metrics: metrics,
			Rules:   cfg.Rules(),
		})

		userID := cfg.Application.UserID
		if _, err := container.TeamService.EnsurePersonalTeam(ctx, userID); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to prepare personal team: %w", err)
		}
		logger.Debug().Str("user_id", userID).Str("driver", cfg.Database.Driver).Msg("session opened")

		businessAPI := api.NewBusinessAPI(container, api.Options{
			UserID: userID,
			Display: api.DisplayOptions{
				WithHours:     cfg.Display.WithHours,
				RunningStatus: cfg.Display.RunningStatus,
			},
			ClockLimits: cfg.ClockLimits(),
		})

		return NewSession(businessAPI, func(ctx context.Context) error {
			if err := metrics.Push(ctx, cfg.Metrics.PushURL, cfg.Metrics.Job); err != nil {
				logger.Warn().Err(err).Str("url", cfg.Metrics.PushURL).Msg("failed to push metrics")
			}
			return store.Close()
		}), nil
	}
}
