// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package shellexec runs validated command lines through the system
// shell with a bounded timeout and bounded captured output.
package shellexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when the effective timeout elapses before
	// the subprocess exits. The subprocess is killed.
	ErrTimeout = errors.New("command timed out")

	// ErrOutputLimit is returned when combined stdout+stderr exceeds
	// the configured maximum size. The subprocess is killed.
	ErrOutputLimit = errors.New("command output exceeded limit")
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout  string
	Stderr  string
	Success bool
}

// Executor invokes a system shell with a raw command string.
// It performs no validation; callers gate commands through policy first.
type Executor struct {
	// MaxTimeout is the ceiling for per-command timeouts.
	MaxTimeout time.Duration
	// MaxOutputBytes caps combined captured stdout+stderr.
	MaxOutputBytes int64
}

func New(maxTimeout time.Duration, maxOutputBytes int64) *Executor {
	return &Executor{
		MaxTimeout:     maxTimeout,
		MaxOutputBytes: maxOutputBytes,
	}
}

// EffectiveTimeout returns min(requested, MaxTimeout). A zero or
// negative request means "no preference" and yields the ceiling.
func (x *Executor) EffectiveTimeout(requested time.Duration) time.Duration {
	if requested <= 0 || requested > x.MaxTimeout {
		return x.MaxTimeout
	}
	return requested
}

// Run executes command via "sh -c" and waits for it to exit, be killed
// by the timeout, or exceed the output cap. A nonzero exit status is a
// normal completion with Success=false, not an error.
func (x *Executor) Run(ctx context.Context, command string, requested time.Duration) (*Result, error) {
	timeout := x.EffectiveTimeout(requested)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The cap is shared across both streams; tripping it cancels the
	// context so that the subprocess is killed rather than left blocked
	// on a pipe nobody drains.
	budget := &outputCap{remaining: x.MaxOutputBytes, cancel: cancel}
	stdout := &cappedBuffer{cap: budget}
	stderr := &cappedBuffer{cap: budget}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	switch {
	case budget.tripped():
		return nil, fmt.Errorf("%w: %d bytes", ErrOutputLimit, x.MaxOutputBytes)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%w after %dms", ErrTimeout, timeout.Milliseconds())
	}
	res := &Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Success: err == nil,
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The shell itself could not be spawned.
			return nil, err
		}
	}
	return res, nil
}

// outputCap is the budget shared by the stdout and stderr buffers of a
// single invocation.
type outputCap struct {
	mu        sync.Mutex
	remaining int64
	exceeded  bool
	cancel    context.CancelFunc
}

func (c *outputCap) take(n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exceeded {
		return ErrOutputLimit
	}
	if n > c.remaining {
		c.exceeded = true
		c.cancel()
		return ErrOutputLimit
	}
	c.remaining -= n
	return nil
}

func (c *outputCap) tripped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exceeded
}

type cappedBuffer struct {
	cap *outputCap
	buf bytes.Buffer
}

// Write appends p unless it would push the combined output past the
// budget. os/exec copies each stream from its own goroutine, so the
// budget check and the append stay under the shared lock.
func (b *cappedBuffer) Write(p []byte) (int, error) {
	if err := b.cap.take(int64(len(p))); err != nil {
		return 0, err
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
