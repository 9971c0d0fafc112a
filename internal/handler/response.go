package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"studentresults/internal/service"
	"studentresults/internal/stats"
)

// writeJSON marshals v before writing the header. A value that cannot be
// encoded is answered with 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// writeError answers validation errors with 400 and their message. Anything
// else is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, logger log.Logger, err error) {
	if service.ValidationError(err) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}

	level.Error(logger).Log("msg", "request failed", "method", r.Method, "path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()), "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
}

func reportBody(report *stats.Report) map[string]interface{} {
	return map[string]interface{}{
		"report":  report,
		"summary": report.Summary(),
	}
}
