package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_CollectorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMonitor(ctx, nil)

	cancel()

	select {
	case <-m.stopped:
	case <-time.After(time.Second):
		t.Fatal("collector goroutine did not stop after cancel")
	}
}

func TestMonitor_NilReceiverTrackersAreNoops(t *testing.T) {
	var m *Monitor

	require.NotPanics(t, func() {
		m.TrackRegistration("ev1", "pending")
		m.TrackScan("success")
		m.TrackUpload("proof", 10*time.Millisecond)
		m.TrackDraftOperation("put", "ok")
	})
}

func TestMonitor_CollectDraftMetricsWithoutRedis(t *testing.T) {
	m := &Monitor{}

	assert.NotPanics(t, func() {
		m.collectDraftMetrics(context.Background())
	})
}
