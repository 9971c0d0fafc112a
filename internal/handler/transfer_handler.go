package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"studentresults/internal/service"
)

// maxImportSize bounds the multipart body of an import.
const maxImportSize = 10 << 20

type TransferService interface {
	ImportCSV(fileName string, r io.Reader) (*service.ImportResult, error)
	ExportCSV(w io.Writer) error
}

type TransferHandler struct {
	transferService TransferService
	logger          log.Logger
}

func NewTransferHandler(transferService TransferService, logger log.Logger) *TransferHandler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &TransferHandler{transferService: transferService, logger: logger}
}

// ImportCSV adds the rows of the uploaded CSV file. The upload is read in the
// request; nothing is written to disk.
func (h *TransferHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "File too large or bad request", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.transferService.ImportCSV(filepath.Base(header.Filename), file)
	if err != nil && result != nil {
		// rows before the failure are already in the roster
		level.Error(h.logger).Log("msg", "import failed", "file", result.FileName, "added", result.Added,
			"request_id", middleware.GetReqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "import failed", "import": result})
		return
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportCSV downloads the report table as CSV.
func (h *TransferHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
	if err := h.transferService.ExportCSV(w); err != nil {
		// headers and part of the body may already be gone
		level.Error(h.logger).Log("msg", "failed to export students", "err", err)
	}
}
