package monitoring

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total registrations submitted, by event and payment status",
		},
		[]string{"event_id", "status"},
	)

	checkinScans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkin_scans_total",
			Help: "Total check-in scans, by result",
		},
		[]string{"result"},
	)

	uploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upload_normalize_duration_seconds",
			Help:    "Duration of image upload normalization",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"kind"},
	)

	draftOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_operations_total",
			Help: "Total draft store operations",
		},
		[]string{"operation", "status"},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)

	draftKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "draft_keys_total",
			Help: "Current number of stored wizard drafts",
		},
	)
)

type Monitor struct {
	redis   *redis.Client
	stopped chan struct{}
}

// NewMonitor starts a background collector that runs until ctx is
// cancelled.
func NewMonitor(ctx context.Context, redisClient *redis.Client) *Monitor {
	monitor := &Monitor{
		redis:   redisClient,
		stopped: make(chan struct{}),
	}

	go monitor.collectMetrics(ctx)

	return monitor
}

func (m *Monitor) collectMetrics(ctx context.Context) {
	defer close(m.stopped)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectDraftMetrics(ctx)
			goroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

func (m *Monitor) collectDraftMetrics(ctx context.Context) {
	if m.redis == nil {
		return
	}
	keys, _ := m.redis.Keys(ctx, "draft:*").Result()
	draftKeys.Set(float64(len(keys)))
}

// TrackRegistration counts a submitted registration.
func (m *Monitor) TrackRegistration(eventID, status string) {
	registrationsTotal.WithLabelValues(eventID, status).Inc()
}

// TrackScan counts a check-in scan by result.
func (m *Monitor) TrackScan(result string) {
	checkinScans.WithLabelValues(result).Inc()
}

// TrackUpload records how long an image normalization took.
func (m *Monitor) TrackUpload(kind string, duration time.Duration) {
	uploadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// TrackDraftOperation counts a draft store operation.
func (m *Monitor) TrackDraftOperation(operation, status string) {
	draftOperations.WithLabelValues(operation, status).Inc()
}
