package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"studentresults/internal/logger"
	"studentresults/internal/model"
	"studentresults/internal/stats"
	"studentresults/internal/store"
)

// Validation errors are user facing and returned unchanged by every operation.
var (
	ErrInvalidMarks = errors.New("marks must be numeric")
	ErrMissingName  = errors.New("student name is required")
	ErrNoSelection  = errors.New("no student selected")
)

// ValidationError reports whether err was caused by user input rather than a
// store failure.
func ValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMarks) || errors.Is(err, ErrMissingName) || errors.Is(err, ErrNoSelection)
}

// RecordService owns the roster and applies one action at a time. Every
// mutation recomputes the report and hands it to registered listeners.
type RecordService struct {
	store  store.Store
	logger log.Logger

	// serializes actions: the store itself has no locking
	actionLock sync.Mutex

	reportListeners map[chan *stats.Report]bool
	listenerLock    sync.RWMutex
}

func NewRecordService(st store.Store, l log.Logger) *RecordService {
	if l == nil {
		l = log.NewNopLogger()
	}
	return &RecordService{
		store:           st,
		logger:          l,
		reportListeners: make(map[chan *stats.Report]bool),
	}
}

// Add validates the raw form values and appends a new student. Marks are
// checked before the name.
func (s *RecordService) Add(name, mathMark, scienceMark, englishMark string) error {
	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	if err := s.add(name, [model.SubjectCount]string{mathMark, scienceMark, englishMark}); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *RecordService) add(name string, raw [model.SubjectCount]string) error {
	student, err := parseStudent(name, raw)
	if err != nil {
		return err
	}
	if err := s.store.Append(student); err != nil {
		return fmt.Errorf("append student: %w", err)
	}
	level.Debug(s.logger).Log("msg", "student added", "name", student.Name)
	return nil
}

func parseStudent(name string, raw [model.SubjectCount]string) (model.Student, error) {
	var marks [model.SubjectCount]float64
	for i, value := range raw {
		mark, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(mark) || math.IsInf(mark, 0) {
			return model.Student{}, fmt.Errorf("%w: %s got %q", ErrInvalidMarks, model.Subjects[i], value)
		}
		if math.Abs(mark) > model.MaxMarkMagnitude {
			return model.Student{}, fmt.Errorf("%w: %s out of range %q", ErrInvalidMarks, model.Subjects[i], value)
		}
		marks[i] = mark
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Student{}, ErrMissingName
	}

	return model.NewStudent(name, marks), nil
}

// RemoveByName deletes every student named exactly name, ignoring surrounding
// whitespace, and returns the number removed.
func (s *RecordService) RemoveByName(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNoSelection
	}

	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	removed, err := s.store.RemoveByName(name)
	if err != nil {
		return 0, fmt.Errorf("remove students: %w", err)
	}
	level.Debug(s.logger).Log("msg", "students removed", "name", name, "count", removed)

	s.changed()
	return removed, nil
}

// Clear empties the roster. Asking the user for confirmation is up to the
// caller.
func (s *RecordService) Clear() error {
	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	start := time.Now()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	logger.LogWithTiming(s.logger, start, "roster cleared")

	s.changed()
	return nil
}

// Roster returns a copy of the current roster in insertion order.
func (s *RecordService) Roster() ([]model.Student, error) {
	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	return s.store.Snapshot()
}

// Report computes the report for the current roster.
func (s *RecordService) Report() (*stats.Report, error) {
	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	return s.report()
}

func (s *RecordService) report() (*stats.Report, error) {
	snapshot, err := s.store.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("snapshot roster: %w", err)
	}
	return stats.ComputeReport(snapshot), nil
}

// RegisterReportListener subscribes ch to the report computed after every
// mutation.
func (s *RecordService) RegisterReportListener(ch chan *stats.Report) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.reportListeners[ch] = true
}

func (s *RecordService) UnregisterReportListener(ch chan *stats.Report) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.reportListeners, ch)
}

// BroadcastReport sends report to every listener that is ready for it.
func (s *RecordService) BroadcastReport(report *stats.Report) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.reportListeners {
		select {
		case listener <- report:
		default:
			// listener busy, it gets the next one
		}
	}
}

// changed is called with actionLock held after a successful mutation.
func (s *RecordService) changed() {
	s.listenerLock.RLock()
	listening := len(s.reportListeners) > 0
	s.listenerLock.RUnlock()
	if !listening {
		return
	}

	report, err := s.report()
	if err != nil {
		level.Error(s.logger).Log("msg", "failed to compute report for listeners", "err", err)
		return
	}
	s.BroadcastReport(report)
}
