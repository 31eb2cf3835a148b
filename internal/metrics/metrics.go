// Package metrics exposes Prometheus collectors for the sheet store and the
// HTTP API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"barkeep/internal/store"
)

const namespace = "barkeep"

var (
	// StoreOperationDuration observes backend calls by sheet and operation.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of sheet store operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sheet", "operation"},
	)

	// StoreErrorsTotal counts failed backend calls.
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Total number of failed sheet store operations",
		},
		[]string{"sheet", "operation"},
	)

	// HTTPRequestsTotal counts API requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes API latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// OperationsTotal counts repository operations by entity, operation and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of ingredient and recipe operations",
		},
		[]string{"entity", "operation", "outcome"},
	)
)

// TrackStoreOperation returns a function that records the duration of a
// backend call started at the time it is given.
func TrackStoreOperation(sheet, operation string) func(start time.Time) {
	return func(start time.Time) {
		StoreOperationDuration.WithLabelValues(sheet, operation).Observe(time.Since(start).Seconds())
	}
}

// RecordOperation increments the operation counter. A nil err is recorded as
// "ok".
func RecordOperation(entity, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	OperationsTotal.WithLabelValues(entity, operation, outcome).Inc()
}

// Middleware records request counts and latency for next under route.
func Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentBackend wraps backend so every sheet call is timed.
func InstrumentBackend(backend store.Backend) store.Backend {
	return &instrumentedBackend{Backend: backend}
}

type instrumentedBackend struct {
	store.Backend
}

func (b *instrumentedBackend) Sheet(ctx context.Context, name string) (store.Table, error) {
	defer TrackStoreOperation(name, "sheet")(time.Now())
	table, err := b.Backend.Sheet(ctx, name)
	if err != nil {
		StoreErrorsTotal.WithLabelValues(name, "sheet").Inc()
		return nil, err
	}
	return &instrumentedTable{Table: table}, nil
}

func (b *instrumentedBackend) CreateSheet(ctx context.Context, name string, headers []string) (store.Table, error) {
	defer TrackStoreOperation(name, "create_sheet")(time.Now())
	table, err := b.Backend.CreateSheet(ctx, name, headers)
	if err != nil {
		StoreErrorsTotal.WithLabelValues(name, "create_sheet").Inc()
		return nil, err
	}
	return &instrumentedTable{Table: table}, nil
}

type instrumentedTable struct {
	store.Table
}

func (t *instrumentedTable) observe(operation string, start time.Time, err error) {
	TrackStoreOperation(t.Name(), operation)(start)
	if err != nil {
		StoreErrorsTotal.WithLabelValues(t.Name(), operation).Inc()
	}
}

func (t *instrumentedTable) ReadAll(ctx context.Context) ([]store.Row, error) {
	start := time.Now()
	rows, err := t.Table.ReadAll(ctx)
	t.observe("read_all", start, err)
	return rows, err
}

func (t *instrumentedTable) AppendRow(ctx context.Context, values store.Row) error {
	start := time.Now()
	err := t.Table.AppendRow(ctx, values)
	t.observe("append_row", start, err)
	return err
}

func (t *instrumentedTable) SetCellValue(ctx context.Context, row, col int, value any) error {
	start := time.Now()
	err := t.Table.SetCellValue(ctx, row, col, value)
	t.observe("set_cell", start, err)
	return err
}
