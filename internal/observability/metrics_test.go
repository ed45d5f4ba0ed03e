package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordActivity("created")
	m.RecordActivity("created")
	m.RecordClone(3)
	m.RecordEntryStarted()
	m.RecordEntryStopped(90 * time.Second)
	m.RecordEntryStopped(-time.Second)
	m.RecordError("start task", "INVALID_STATE")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActivitiesTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActivitiesTotal.WithLabelValues("cloned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TimeEntriesTotal.WithLabelValues("started")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TimeEntriesTotal.WithLabelValues("stopped")))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.TrackedSeconds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("start task", "INVALID_STATE")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TasksCloned))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordActivity("created")
		m.RecordClone(1)
		m.RecordEntryStarted()
		m.RecordEntryStopped(time.Second)
		m.RecordError("op", "code")
	})
	assert.NoError(t, m.Push(context.Background(), "http://unused", "momentum"))
}

func TestMetrics_Push(t *testing.T) {
	var method, path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New()
	m.RecordActivity("completed")

	require.NoError(t, m.Push(context.Background(), srv.URL, "momentum_cli"))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/momentum_cli", path)
	assert.True(t, len(body) > 0)
}

func TestMetrics_PushEmptyURLSkips(t *testing.T) {
	assert.NoError(t, New().Push(context.Background(), "", "momentum"))
}

func TestMetrics_PushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New().Push(context.Background(), srv.URL, "momentum")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))
}
