package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"barkeep/internal/errs"
	"barkeep/internal/store"
)

func TestInstrumentBackendPassesThrough(t *testing.T) {
	ctx := context.Background()
	backend := InstrumentBackend(store.NewMemory())

	table, err := backend.CreateSheet(ctx, "metrics_sheet", []string{"ID", "Name"})
	if err != nil {
		t.Fatalf("CreateSheet error = %v", err)
	}
	if err := table.AppendRow(ctx, store.Row{"1", "Lime"}); err != nil {
		t.Fatalf("AppendRow error = %v", err)
	}
	if err := table.SetCellValue(ctx, 1, 1, "Lemon"); err != nil {
		t.Fatalf("SetCellValue error = %v", err)
	}

	reopened, err := backend.Sheet(ctx, "metrics_sheet")
	if err != nil {
		t.Fatalf("Sheet error = %v", err)
	}
	rows, err := reopened.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Lemon" {
		t.Fatalf("rows = %v, want header plus updated row", rows)
	}

	// create_sheet, sheet, append_row, set_cell, read_all
	if n := testutil.CollectAndCount(StoreOperationDuration); n < 5 {
		t.Fatalf("store duration series = %d, want at least 5", n)
	}
}

func TestInstrumentBackendCountsErrors(t *testing.T) {
	backend := InstrumentBackend(store.NewMemory())

	_, err := backend.Sheet(context.Background(), "metrics_missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Sheet error = %v, want ErrNotFound", err)
	}
	if got := testutil.ToFloat64(StoreErrorsTotal.WithLabelValues("metrics_missing", "sheet")); got != 1 {
		t.Fatalf("store errors = %v, want 1", got)
	}
}

func TestRecordOperation(t *testing.T) {
	RecordOperation("metrics_entity", "add", nil)
	RecordOperation("metrics_entity", "add", nil)
	RecordOperation("metrics_entity", "add", errors.New("boom"))

	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues("metrics_entity", "add", "ok")); got != 2 {
		t.Fatalf("ok operations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues("metrics_entity", "add", "error")); got != 1 {
		t.Fatalf("error operations = %v, want 1", got)
	}
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	handler := Middleware("/metrics-test", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-test", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test", "418")); got != 1 {
		t.Fatalf("requests = %v, want 1", got)
	}
}
