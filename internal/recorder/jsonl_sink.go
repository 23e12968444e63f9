package recorder

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/draiml/draiml/internal/logging"
)

// JSONLSink appends one JSON object per line to a file opened with O_APPEND.
type JSONLSink struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	logger logging.Logger
}

// NewJSONLSink opens path for appending, creating it if needed.
func NewJSONLSink(path string, logger logging.Logger) (*JSONLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening decision log: %w", err)
	}
	if err := terminateTornLine(f); err != nil {
		f.Close()
		return nil, err
	}
	logger.Info("jsonl decision sink ready", logging.Field{Key: "path", Value: path})
	return &JSONLSink{path: path, f: f, logger: logger}, nil
}

// terminateTornLine ends a partial last line left by a crash so the next
// record starts on a line of its own.
func terminateTornLine(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat decision log: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return fmt.Errorf("reading decision log tail: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err := f.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("terminating torn line: %w", err)
	}
	return nil
}

func (s *JSONLSink) Append(_ context.Context, e Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(line); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return nil
}

func (s *JSONLSink) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening decision log: %w", err)
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			// a torn final line from a crash is skipped, not fatal
			s.logger.Warn("skipping malformed decision line",
				logging.Field{Key: "line", Value: line}, logging.Field{Key: "error", Value: err})
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading decision log: %w", err)
	}
	return tail(out, limit), nil
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
