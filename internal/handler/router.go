package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
)

// Service is everything the routes need from the record service.
type Service interface {
	StudentService
	TransferService
	ReportStreamer
}

// NewRouter registers every route. rateLimit is the number of requests per
// minute allowed per client IP; 0 disables limiting.
func NewRouter(svc Service, logger log.Logger, rateLimit int) *mux.Router {
	studentHandler := NewStudentHandler(svc, logger)
	formHandler := NewFormHandler(svc, logger)
	transferHandler := NewTransferHandler(svc, logger)
	streamHandler := NewReportStreamHandler(svc, logger)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if rateLimit > 0 {
		r.Use(httprate.LimitByIP(rateLimit, time.Minute))
	}

	r.Handle("/", middleware.NoCache(http.HandlerFunc(formHandler.Index))).Methods("GET")
	r.HandleFunc("/form/add", formHandler.Add).Methods("POST")
	r.HandleFunc("/form/delete", formHandler.Delete).Methods("POST")
	r.HandleFunc("/form/clear", formHandler.Clear).Methods("POST")

	r.HandleFunc("/students", studentHandler.GetReport).Methods("GET")
	r.HandleFunc("/students", studentHandler.AddStudent).Methods("POST")
	r.HandleFunc("/students", studentHandler.DeleteStudents).Methods("DELETE")
	r.HandleFunc("/students/clear", studentHandler.ClearStudents).Methods("POST")
	r.HandleFunc("/students/import", transferHandler.ImportCSV).Methods("POST")
	r.HandleFunc("/students/export", transferHandler.ExportCSV).Methods("GET")

	r.Handle("/events", middleware.NoCache(http.HandlerFunc(streamHandler.Events))).Methods("GET")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	return r
}
