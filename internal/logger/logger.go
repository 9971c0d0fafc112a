package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New creates a logfmt logger writing to stdout. When dir is set the output
// is also appended to a timestamped file in dir. The returned closer releases
// that file and is a no-op otherwise.
func New(dir, prefix string) (log.Logger, io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		logFile := filepath.Join(dir, fmt.Sprintf("%s_%s.log", prefix, timestamp))

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	return With(log.NewLogfmtLogger(log.NewSyncWriter(out))), closer, nil
}

// With decorates base with the timestamp and caller fields every line carries.
func With(base log.Logger) log.Logger {
	return log.With(base, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// LogWithTiming logs msg at info level along with the time elapsed since start.
func LogWithTiming(logger log.Logger, start time.Time, msg string, keyvals ...interface{}) {
	keyvals = append([]interface{}{"msg", msg, "took", time.Since(start)}, keyvals...)
	level.Info(logger).Log(keyvals...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
