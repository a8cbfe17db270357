// Package journal persists a running account of tracker activity (entries
// logged, saves failing, corrupt files quarantined) to an append-only text
// file, so what happened is inspectable after the fact. Lines from every
// process run carry a short run id to tell overlapping invocations apart.
package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents the severity of a journal entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Journal appends leveled, timestamped lines to a single file.
type Journal struct {
	path  string
	runID string
	mu    sync.Mutex
}

// New creates a journal writing to the provided path. Each Journal gets its
// own run id.
func New(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: ensure dir: %w", err)
	}
	return &Journal{
		path:  path,
		runID: uuid.NewString()[:8],
	}, nil
}

// Path returns the file backing this journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// RunID returns the identifier stamped on this process run's lines.
func (j *Journal) RunID() string {
	if j == nil {
		return ""
	}
	return j.runID
}

// Append writes a single entry. Failures are swallowed: the journal is an
// aid, never a reason to fail an operation.
func (j *Journal) Append(level Level, message string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	line := fmt.Sprintf("%s %-5s [%s] %s\n",
		time.Now().Format(time.RFC3339),
		string(level),
		j.runID,
		strings.TrimSpace(message),
	)
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(line)
}

// Tail returns up to maxLines of the most recent journal lines.
func (j *Journal) Tail(maxLines int) []string {
	if j == nil || maxLines <= 0 {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	file, err := os.Open(j.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Info appends an informational entry.
func (j *Journal) Info(format string, args ...any) {
	j.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (j *Journal) Warn(format string, args ...any) {
	j.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (j *Journal) Error(format string, args ...any) {
	j.Append(LevelError, fmt.Sprintf(format, args...))
}
