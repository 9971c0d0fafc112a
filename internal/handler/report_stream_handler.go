package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"studentresults/internal/stats"
)

type ReportStreamer interface {
	Report() (*stats.Report, error)
	RegisterReportListener(ch chan *stats.Report)
	UnregisterReportListener(ch chan *stats.Report)
}

type ReportStreamHandler struct {
	streamer ReportStreamer
	logger   log.Logger
}

func NewReportStreamHandler(streamer ReportStreamer, logger log.Logger) *ReportStreamHandler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &ReportStreamHandler{streamer: streamer, logger: logger}
}

// Events streams the current report followed by a fresh report after every
// roster change, using Server-Sent Events.
func (h *ReportStreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	reportChan := make(chan *stats.Report, 1)
	defer close(reportChan)

	h.streamer.RegisterReportListener(reportChan)
	defer h.streamer.UnregisterReportListener(reportChan)

	report, err := h.streamer.Report()
	if err != nil {
		level.Error(h.logger).Log("msg", "failed to compute initial report", "err", err)
		return
	}
	if !h.send(w, flusher, report) {
		return
	}

	for {
		select {
		case report := <-reportChan:
			if !h.send(w, flusher, report) {
				return
			}
		case <-r.Context().Done():
			level.Debug(h.logger).Log("msg", "report stream client disconnected")
			return
		}
	}
}

func (h *ReportStreamHandler) send(w http.ResponseWriter, flusher http.Flusher, report *stats.Report) bool {
	data, err := json.Marshal(reportBody(report))
	if err != nil {
		level.Error(h.logger).Log("msg", "failed to marshal report", "err", err)
		return true
	}
	if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
		level.Debug(h.logger).Log("msg", "failed to write event", "err", err)
		return false
	}
	flusher.Flush()
	return true
}
