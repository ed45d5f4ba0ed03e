package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"momentum/internal/errors"
	"momentum/internal/observability"
	"momentum/internal/repository"
	"momentum/internal/repository/sqlite"
)

const (
	owner    = "user-1"
	stranger = "user-2"
)

var start = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// testClock is a settable clock shared by the services under test
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	store    repository.Store
	clock    *testClock
	metrics  *observability.Metrics
	services *ServiceContainer
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return setupServicesWithStore(t, store)
}

func setupServicesWithStore(t *testing.T, store repository.Store) *testEnv {
	t.Helper()
	env := &testEnv{
		store:   store,
		clock:   &testClock{now: start},
		metrics: observability.New(),
	}
	env.services = NewServiceContainer(Dependencies{
		Store:   store,
		Metrics: env.metrics,
		Now:     env.clock.Now,
	})

	ctx := context.Background()
	for _, user := range []string{owner, stranger} {
		_, err := env.services.TeamService.EnsurePersonalTeam(ctx, user)
		require.NoError(t, err)
	}
	return env
}

// seedActivity creates an activity owned by owner with one task per duration
func (env *testEnv) seedActivity(t *testing.T, name string, durations ...time.Duration) *seededActivity {
	t.Helper()
	ctx := context.Background()

	a, err := env.services.ActivityService.CreateActivity(ctx, owner, name, nil)
	require.NoError(t, err)

	seeded := &seededActivity{ID: a.ID}
	for i, d := range durations {
		task, err := env.services.TaskService.CreateTask(ctx, owner, a.ID, name+" task", d)
		require.NoError(t, err)
		require.Equal(t, i, task.Position)
		seeded.TaskIDs = append(seeded.TaskIDs, task.ID)
	}
	return seeded
}

type seededActivity struct {
	ID      string
	TaskIDs []string
}

// failingStore fails the nth CreateTask issued inside a unit of work
type failingStore struct {
	repository.Store
	failOn int
}

func (f *failingStore) WithinTx(ctx context.Context, fn func(q repository.Queries) error) error {
	return f.Store.WithinTx(ctx, func(q repository.Queries) error {
		return fn(&failingQueries{Queries: q, failOn: f.failOn})
	})
}

type failingQueries struct {
	repository.Queries
	failOn int
	calls  int
}

func (f *failingQueries) CreateTask(ctx context.Context, task *repository.Task, userID string) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.NewDatabaseError("create task", stderrors.New("disk full"))
	}
	return f.Queries.CreateTask(ctx, task, userID)
}
