package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingReconciler struct {
	calls int
	err   error
}

func (r *countingReconciler) Reconcile(context.Context) (service.ReconcileResult, error) {
	r.calls++
	return service.ReconcileResult{TeachersUpdated: 1}, r.err
}

func TestSchedulerTick(t *testing.T) {
	rec := &countingReconciler{}
	s := NewScheduler(rec, time.UTC, 3, time.Minute, zap.NewNop())

	clock := time.Date(2025, 12, 1, 1, 0, 0, 0, time.UTC) // понедельник, до планового часа
	s.now = func() time.Time { return clock }

	s.runStartup(context.Background())
	assert.Equal(t, 1, rec.calls)

	assert.False(t, s.tick(context.Background()))

	clock = time.Date(2025, 12, 1, 3, 1, 0, 0, time.UTC)
	assert.True(t, s.tick(context.Background()))
	assert.Equal(t, 2, rec.calls)

	// в тот же день повторно не запускается
	clock = time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)
	assert.False(t, s.tick(context.Background()))

	clock = time.Date(2025, 12, 2, 3, 0, 0, 0, time.UTC)
	assert.True(t, s.tick(context.Background()))
	assert.Equal(t, 3, rec.calls)
}

func TestSchedulerStartupAfterHourCountsForToday(t *testing.T) {
	rec := &countingReconciler{err: service.ErrReconcileInProgress}
	s := NewScheduler(rec, time.UTC, 3, time.Minute, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC) }

	s.runStartup(context.Background())
	assert.False(t, s.tick(context.Background()))
	assert.Equal(t, 1, rec.calls)
}

func TestSchedulerRunStops(t *testing.T) {
	rec := &countingReconciler{err: errors.New("db down")}
	s := NewScheduler(rec, time.UTC, 3, time.Hour, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestOpsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	ready := true
	h := NewOpsHandler(reg, map[string]Pinger{
		"postgres": func(context.Context) error {
			if !ready {
				return errors.New("down")
			}
			return nil
		},
	})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)
	}

	ready = false
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
