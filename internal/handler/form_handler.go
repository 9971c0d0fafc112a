package handler

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"studentresults/internal/model"
	"studentresults/internal/service"
	"studentresults/internal/stats"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"mark":    stats.FormatMark,
	"average": stats.FormatAverage,
}).ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Error    string
	Subjects []string
	Report   *stats.Report
	Summary  stats.Summary
}

// FormHandler serves the HTML page. Every form post redirects back to the
// page, carrying a validation error in the error query parameter.
type FormHandler struct {
	studentService StudentService
	logger         log.Logger
}

func NewFormHandler(studentService StudentService, logger log.Logger) *FormHandler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &FormHandler{studentService: studentService, logger: logger}
}

func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	report, err := h.studentService.Report()
	if err != nil {
		level.Error(h.logger).Log("msg", "failed to compute report", "err", err)
		http.Error(w, "Failed to load student records", http.StatusInternalServerError)
		return
	}

	page := indexPage{
		Error:    r.URL.Query().Get("error"),
		Subjects: model.Subjects[:],
		Report:   report,
		Summary:  report.Summary(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		level.Error(h.logger).Log("msg", "failed to render page", "err", err)
	}
}

func (h *FormHandler) Add(w http.ResponseWriter, r *http.Request) {
	err := h.studentService.Add(r.FormValue("name"), r.FormValue("math"), r.FormValue("science"), r.FormValue("english"))
	h.back(w, r, err)
}

func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := h.studentService.RemoveByName(r.FormValue("name"))
	h.back(w, r, err)
}

// Clear relies on the page asking the user before the form is submitted.
func (h *FormHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.back(w, r, h.studentService.Clear())
}

func (h *FormHandler) back(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	if err != nil {
		msg := err.Error()
		if !service.ValidationError(err) {
			level.Error(h.logger).Log("msg", "form action failed", "path", r.URL.Path, "err", err)
			msg = "Something went wrong, please try again."
		}
		target += "?error=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
