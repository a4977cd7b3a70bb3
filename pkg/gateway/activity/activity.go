// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package activity appends structured records of gateway actions to an
// append-only log file.
//
// One line per record:
//
//	[<RFC3339 timestamp>] <ACTION>: <compact JSON details>
//
// Log writes are best-effort from the caller's perspective: the single
// call site that discards the returned error reports it to logrus and
// proceeds, so a full disk never aborts a request.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Action tags the kind of event being recorded.
type Action string

const (
	CommandRequested Action = "COMMAND_REQUESTED"
	CommandExecuted  Action = "COMMAND_EXECUTED"
	CommandError     Action = "COMMAND_ERROR"
	ServerStart      Action = "SERVER_START"
	ServerShutdown   Action = "SERVER_SHUTDOWN"
)

// Logger appends records to a single log file. Safe for concurrent use.
type Logger struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func New(path string) *Logger {
	return &Logger{
		path: path,
		now:  time.Now,
	}
}

// Log serializes details to compact JSON and appends one record line.
// Records are written in call order; the file is opened per call so
// that rotation or deletion of the log never wedges the gateway.
func (l *Logger) Log(action Action, details map[string]any) error {
	j, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal activity details: %w", err)
	}
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().UTC().Format(time.RFC3339), action, j)

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open activity log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append activity record: %w", err)
	}
	return nil
}
