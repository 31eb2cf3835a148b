package handlers

import (
	"context"
	"net/http"
	"time"

	applog "barkeep/internal/log"
)

type healthResponse struct {
	Status string    `json:"status"`
	Sheets string    `json:"sheets"`
	Error  string    `json:"error,omitempty"`
	Time   time.Time `json:"time"`
}

var sheetCheck func(ctx context.Context) error

// ConfigureHealth installs the sheet readiness check used by Health. A nil
// check reports the sheets as unchecked.
func ConfigureHealth(check func(ctx context.Context) error) {
	sheetCheck = check
}

// Health reports whether the sheet store is reachable and every sheet exists.
// It answers 503 when the readiness check fails.
func Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applog.Debug(ctx, "health check requested", "method", r.Method)
	resp := healthResponse{
		Status: "ok",
		Sheets: "unchecked",
		Time:   time.Now().UTC(),
	}

	status := http.StatusOK
	if sheetCheck != nil {
		if err := sheetCheck(ctx); err != nil {
			applog.Error(ctx, "sheet readiness check failed", "error", err)
			resp.Status = "unavailable"
			resp.Sheets = "missing"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.Sheets = "ready"
		}
	}

	writeJSON(w, status, resp)
	applog.Debug(ctx, "health check responded", "status", resp.Status)
}
