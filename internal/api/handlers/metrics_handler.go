package handlers

import (
	"net/http"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
)

type MetricsHandler struct {
	backends *db.Backends
}

func NewMetricsHandler(backends *db.Backends) *MetricsHandler {
	return &MetricsHandler{backends: backends}
}

// Query returns metrics newest first, filtered by any combination of
// operation, document_id, start and end (RFC 3339).
func (h *MetricsHandler) Query(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20, 100)

	filter := db.MetricFilter{
		Operation:  r.URL.Query().Get("operation"),
		DocumentID: r.URL.Query().Get("document_id"),
		Limit:      limit,
		Offset:     offset,
	}
	var ok bool
	if filter.Start, ok = parseTimeParam(r, "start"); !ok {
		writeError(w, http.StatusBadRequest, "start must be RFC 3339", "INVALID_TIME")
		return
	}
	if filter.End, ok = parseTimeParam(r, "end"); !ok {
		writeError(w, http.StatusBadRequest, "end must be RFC 3339", "INVALID_TIME")
		return
	}

	metrics, err := h.backends.Metrics.Query(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": metrics,
		"pagination": map[string]int{
			"limit":    limit,
			"offset":   offset,
			"returned": len(metrics),
		},
	})
}

// Average returns the mean duration_ms for one operation, 0.0 when no
// metrics match.
func (h *MetricsHandler) Average(w http.ResponseWriter, r *http.Request) {
	operation := r.URL.Query().Get("operation")
	if operation == "" {
		writeError(w, http.StatusBadRequest, "operation is required", "MISSING_OPERATION")
		return
	}
	start, ok := parseTimeParam(r, "start")
	if !ok {
		writeError(w, http.StatusBadRequest, "start must be RFC 3339", "INVALID_TIME")
		return
	}
	end, ok := parseTimeParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "end must be RFC 3339", "INVALID_TIME")
		return
	}

	avg, err := h.backends.Metrics.AverageDuration(r.Context(), operation, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"operation":           operation,
		"average_duration_ms": avg,
	})
}

func parseTimeParam(r *http.Request, key string) (*time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, false
	}
	return &t, true
}
