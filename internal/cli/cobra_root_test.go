package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/api"
	"momentum/internal/config"
)

func TestActivityCreateAndShow(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun(t, "activity", "create", "Morning", "routine", "-d", "before work")
	assert.Contains(t, out, "Created activity: Morning routine [")

	activities, err := cli.api.ListActivities(context.Background(), api.ListAll)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	id := activities[0].ID
	assert.Equal(t, "before work", activities[0].Description)

	cli.mustRun(t, "task", "add", id, "1:30", "Warm", "up")
	out = cli.mustRun(t, "activity", "show", id)
	assert.Contains(t, out, "Activity: Morning routine")
	assert.Contains(t, out, "About:     before work")
	assert.Contains(t, out, "Warm up")
	assert.Contains(t, out, "01:30")
	assert.Contains(t, out, "100.0% remaining")

	out = cli.mustRun(t, "activity", "show", id, "--json")
	var view api.ActivityView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, id, view.ID)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Warm up", view.Tasks[0].Name)
}

func TestActivityList(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.mustRun(t, "activity", "list")
	assert.Contains(t, out, "No activities found")

	open, _ := cli.seed(t, "Open one", "1:00")
	done, _ := cli.seed(t, "Done one")
	cli.mustRun(t, "activity", "complete", done.ID)

	out = cli.mustRun(t, "activity", "list")
	assert.Contains(t, out, open.ID)
	assert.Contains(t, out, done.ID)

	out = cli.mustRun(t, "activity", "list", "--filter", "open")
	assert.Contains(t, out, open.ID)
	assert.NotContains(t, out, done.ID)

	out = cli.mustRun(t, "activity", "list", "--filter", "completed", "--format", "json")
	var views []api.ActivityView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, done.ID, views[0].ID)

	out = cli.mustRun(t, "activity", "list", "--format", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,State"))

	_, err := cli.run(t, "activity", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list activities: invalid input for format")

	_, err = cli.run(t, "activity", "list", "--filter", "archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list activities")
}

func TestTaskWorkflow(t *testing.T) {
	cli := setupTestCLI(t)
	activity, tasks := cli.seed(t, "Routine", "1:00", "0:30")

	out := cli.mustRun(t, "task", "start", tasks[0])
	assert.Contains(t, out, "Started:")
	assert.Contains(t, out, "running")

	_, err := cli.run(t, "task", "start", tasks[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start task")
	assert.Contains(t, err.Error(), "already running")

	cli.clock.now = cli.clock.now.Add(20 * time.Second)
	out = cli.mustRun(t, "task", "stop", tasks[0])
	assert.Contains(t, out, "Stopped:")
	assert.Contains(t, out, "(00:20)")

	_, err = cli.run(t, "task", "stop", tasks[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not running")

	_, err = cli.run(t, "activity", "complete", activity.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has unfinished tasks")

	cli.mustRun(t, "task", "complete", tasks[0])
	out = cli.mustRun(t, "task", "delete", tasks[1])
	assert.Contains(t, out, "Deleted task")

	out = cli.mustRun(t, "activity", "complete", activity.ID)
	assert.Contains(t, out, "Completed activity: Routine")

	_, err = cli.run(t, "task", "add", activity.ID, "1:00", "Late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")
}

func TestTaskStopByEntry(t *testing.T) {
	cli := setupTestCLI(t)
	_, tasks := cli.seed(t, "Routine", "1:00")

	entry, err := cli.api.StartTask(context.Background(), tasks[0])
	require.NoError(t, err)

	out := cli.mustRun(t, "task", "stop", "--entry", entry.ID)
	assert.Contains(t, out, entry.ID)
}

func TestActivityCloneDeleteAndTemplates(t *testing.T) {
	cli := setupTestCLI(t)
	source, _ := cli.seed(t, "Template", "5:00", "2:00")

	out := cli.mustRun(t, "activity", "clone", source.ID)
	assert.Contains(t, out, "with 2 tasks")

	out = cli.mustRun(t, "templates")
	assert.Contains(t, out, source.ID)
	assert.Contains(t, out, "Template")

	out = cli.mustRun(t, "templates", "--json", "--limit", "1")
	var templates []api.TemplateView
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	assert.Equal(t, []api.TemplateView{{ActivityID: source.ID, Name: "Template", Clones: 1}}, templates)

	_, err := cli.run(t, "templates", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load templates")

	cli.mustRun(t, "activity", "delete", source.ID)
	_, err = cli.run(t, "activity", "show", source.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestContributions(t *testing.T) {
	cli := setupTestCLI(t)
	done, _ := cli.seed(t, "Daily")
	cli.mustRun(t, "activity", "complete", done.ID)

	out := cli.mustRun(t, "contributions")
	assert.Contains(t, out, "1 activities completed between 2023-05-01 and 2024-05-10")
	assert.Contains(t, out, "█")

	out = cli.mustRun(t, "contributions", "--json")
	var view api.ContributionsView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Total)
}

func TestMalformedIDIsReported(t *testing.T) {
	cli := setupTestCLI(t)

	_, err := cli.run(t, "task", "start", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start task")
}

func TestInvalidConfiguration(t *testing.T) {
	cli := setupTestCLI(t)

	_, err := cli.run(t, "--db-driver", "oracle", "activity", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestFlagsReachFactory(t *testing.T) {
	t.Setenv("MOMENTUM_APP_USER_ID", "env-user")
	var seen *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (*Session, error) {
		seen = cfg
		return nil, stderrors.New("no store")
	}

	var out bytes.Buffer
	root := NewRootCommand(config.NewLoader(), factory, &out)
	err := root.Execute(context.Background(), []string{
		"--user", "flag-user", "--with-hours", "--db-query-timeout", "2s", "activity", "list",
	})

	require.Error(t, err)
	assert.Equal(t, "failed to open store: no store", err.Error())
	require.NotNil(t, seen)
	assert.Equal(t, "flag-user", seen.Application.UserID)
	assert.True(t, seen.Display.WithHours)
	assert.Equal(t, 2*time.Second, seen.Database.QueryTimeout)
}
