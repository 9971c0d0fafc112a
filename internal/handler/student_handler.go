package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-kit/log"
	"studentresults/internal/stats"
)

// StudentService is the part of the record service the student routes use.
type StudentService interface {
	Add(name, mathMark, scienceMark, englishMark string) error
	RemoveByName(name string) (int, error)
	Clear() error
	Report() (*stats.Report, error)
}

type StudentHandler struct {
	studentService StudentService
	logger         log.Logger
}

func NewStudentHandler(studentService StudentService, logger log.Logger) *StudentHandler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &StudentHandler{studentService: studentService, logger: logger}
}

// markInput accepts a mark sent either as a JSON string or as a bare number;
// both reach validation as raw text.
type markInput string

func (m *markInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = markInput(s)
		return nil
	}
	*m = markInput(data)
	return nil
}

type addStudentRequest struct {
	Name    string    `json:"name"`
	Math    markInput `json:"math"`
	Science markInput `json:"science"`
	English markInput `json:"english"`
}

// GetReport returns the report for the current roster.
func (h *StudentHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.studentService.Report()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reportBody(report))
}

// AddStudent appends one student and returns the recomputed report.
func (h *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req addStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	err := h.studentService.Add(req.Name, string(req.Math), string(req.Science), string(req.English))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	report, err := h.studentService.Report()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, reportBody(report))
}

// DeleteStudents removes every student matching the name query parameter.
func (h *StudentHandler) DeleteStudents(w http.ResponseWriter, r *http.Request) {
	removed, err := h.studentService.RemoveByName(r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	report, err := h.studentService.Report()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	body := reportBody(report)
	body["removed"] = removed
	writeJSON(w, http.StatusOK, body)
}

// ClearStudents empties the roster. The caller confirms with confirm=true.
func (h *StudentHandler) ClearStudents(w http.ResponseWriter, r *http.Request) {
	if !strings.EqualFold(r.URL.Query().Get("confirm"), "true") {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "clearing all records requires confirm=true"})
		return
	}

	if err := h.studentService.Clear(); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	report, err := h.studentService.Report()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reportBody(report))
}
