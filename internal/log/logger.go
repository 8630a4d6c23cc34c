// Package log provides the audit trail and the debug logger.
// This file appends audit events to .zero-setup-biome/audit.log.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	EventProjectCreated        = "project_created"
	EventProjectCreationFailed = "project_creation_failed"
)

// AuditFile is the log file name inside the tool directory.
const AuditFile = "audit.log"

// AuditEvent is a single JSON line in the audit log.
type AuditEvent struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Event       string                 `json:"event"`
	ProjectName string                 `json:"projectName"`
	Success     bool                   `json:"success"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// NewAuditEvent builds an event stamped with a fresh id and the current time.
func NewAuditEvent(event, projectName string, success bool, metadata map[string]interface{}) AuditEvent {
	return AuditEvent{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Event:       event,
		ProjectName: projectName,
		Success:     success,
		Metadata:    metadata,
	}
}

// AuditLogger writes append-only JSONL events. A disabled logger accepts
// events and drops them.
type AuditLogger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// NewAuditLogger creates a logger that writes to <dir>/<toolDir>/audit.log.
// The directory is created on first write, not here.
func NewAuditLogger(dir, toolDir string, enabled bool) *AuditLogger {
	return &AuditLogger{
		path:    filepath.Join(dir, toolDir, AuditFile),
		enabled: enabled,
	}
}

// Path returns the log file path.
func (l *AuditLogger) Path() string {
	return l.path
}

// Enabled reports whether events are written.
func (l *AuditLogger) Enabled() bool {
	return l != nil && l.enabled
}

// Append writes a single event as one JSON line.
// Missing ID and Timestamp are filled in. Thread-safe via mutex.
func (l *AuditLogger) Append(event AuditEvent) error {
	if !l.Enabled() {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *AuditLogger) ReadAll() ([]AuditEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []AuditEvent{}, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var events []AuditEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event AuditEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse audit line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	return events, nil
}
