package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"momentum/internal/api"
	"momentum/internal/config"
	"momentum/internal/repository/sqlite"
	"momentum/internal/services"
)

const testUser = "cli-user"

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

// testCLI runs commands against one in-memory store shared by every invocation
type testCLI struct {
	api   api.BusinessAPI
	clock *testClock
}

func setupTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("MOMENTUM_APP_USER_ID", testUser)

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &testClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	container := services.NewServiceContainer(services.Dependencies{Store: store, Now: clock.Now})
	_, err = container.TeamService.EnsurePersonalTeam(context.Background(), testUser)
	require.NoError(t, err)

	return &testCLI{
		api:   api.NewBusinessAPI(container, api.Options{UserID: testUser, Now: clock.Now}),
		clock: clock,
	}
}

// run executes one command line on a fresh command tree and returns its output
func (c *testCLI) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	factory := func(ctx context.Context, cfg *config.Config) (*Session, error) {
		return NewSession(c.api, nil), nil
	}
	root := NewRootCommand(config.NewLoader(), factory, &out)
	err := root.Execute(context.Background(), args)
	return out.String(), err
}

// mustRun is run failing the test on error
func (c *testCLI) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, args...)
	require.NoError(t, err, "momentum %v", args)
	return out
}

// seed creates an activity with tasks through the facade
func (c *testCLI) seed(t *testing.T, name string, clocks ...string) (*api.ActivityView, []string) {
	t.Helper()
	ctx := context.Background()
	activity, err := c.api.CreateActivity(ctx, name, "")
	require.NoError(t, err)

	var taskIDs []string
	for i, clock := range clocks {
		task, err := c.api.AddTask(ctx, activity.ID, name+" task", clock)
		require.NoError(t, err)
		require.Equal(t, i, task.Position)
		taskIDs = append(taskIDs, task.ID)
	}
	return activity, taskIDs
}
