package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-kit/log/level"
	"studentresults/internal/model"
	"studentresults/internal/stats"
)

// importColumns is the minimum layout of an imported row: name then one mark
// per subject.
const importColumns = 1 + model.SubjectCount

// RowError describes a rejected import line.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes one CSV import.
type ImportResult struct {
	FileName     string     `json:"fileName"`
	TotalRecords int        `json:"totalRecords"`
	Added        int        `json:"added"`
	Rejected     []RowError `json:"rejected"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      time.Time  `json:"endTime"`
}

// ImportCSV adds one student per data row of r, skipping the header row. Each
// row goes through the same validation as Add; invalid rows are reported and
// do not stop the import. A read or store failure stops it: the rows added
// so far stay in the roster and the partial result is returned with the error.
func (s *RecordService) ImportCSV(fileName string, r io.Reader) (*ImportResult, error) {
	s.actionLock.Lock()
	defer s.actionLock.Unlock()

	result := &ImportResult{
		FileName:  fileName,
		Rejected:  []RowError{},
		StartTime: time.Now(),
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			result.EndTime = time.Now()
			return result, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return s.abortImport(result, fmt.Errorf("read record: %w", err))
			}
			result.TotalRecords++
			result.Rejected = append(result.Rejected, RowError{Line: parseErr.Line, Reason: parseErr.Err.Error()})
			continue
		}
		result.TotalRecords++
		line, _ := reader.FieldPos(0)

		if len(record) < importColumns {
			result.Rejected = append(result.Rejected, RowError{
				Line:   line,
				Reason: fmt.Sprintf("expected %d columns, got %d", importColumns, len(record)),
			})
			continue
		}

		err = s.add(record[0], [model.SubjectCount]string{record[1], record[2], record[3]})
		if err != nil {
			if !ValidationError(err) {
				return s.abortImport(result, fmt.Errorf("line %d: %w", line, err))
			}
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: err.Error()})
			continue
		}
		result.Added++
	}

	result.EndTime = time.Now()
	level.Info(s.logger).Log("msg", "import completed", "file", fileName, "records", result.TotalRecords,
		"added", result.Added, "rejected", len(result.Rejected), "took", result.EndTime.Sub(result.StartTime))

	if result.Added > 0 {
		s.changed()
	}
	return result, nil
}

func (s *RecordService) abortImport(result *ImportResult, err error) (*ImportResult, error) {
	result.EndTime = time.Now()
	level.Warn(s.logger).Log("msg", "import aborted", "file", result.FileName, "added", result.Added, "err", err)

	if result.Added > 0 {
		s.changed()
	}
	return result, err
}

// ExportCSV writes the report table, one row per student in roster order.
func (s *RecordService) ExportCSV(w io.Writer) error {
	report, err := s.Report()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := append([]string{"Name"}, model.Subjects[:]...)
	header = append(header, "Total", "Average", "Grade")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{row.Name}
		for _, mark := range row.Marks {
			record = append(record, stats.FormatMark(mark))
		}
		record = append(record, stats.FormatMark(row.Total), stats.FormatAverage(row.Average), row.Grade)
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
