// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package shellexec

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestEffectiveTimeout(t *testing.T) {
	x := New(30*time.Second, 1024)

	tests := []struct {
		name      string
		requested time.Duration
		want      time.Duration
	}{
		{
			name:      "no preference yields the ceiling",
			requested: 0,
			want:      30 * time.Second,
		},
		{
			name:      "request above the ceiling is clamped down",
			requested: 5 * time.Minute,
			want:      30 * time.Second,
		},
		{
			name:      "request below the ceiling is honored",
			requested: 2 * time.Second,
			want:      2 * time.Second,
		},
		{
			name:      "negative request yields the ceiling",
			requested: -1 * time.Second,
			want:      30 * time.Second,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, x.EffectiveTimeout(test.requested))
		})
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	x := New(10*time.Second, 64*1024)

	t.Run("stdout captured", func(t *testing.T) {
		res, err := x.Run(ctx, "echo hello", 0)
		assert.NilError(t, err)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Equal(t, "", res.Stderr)
		assert.Assert(t, res.Success)
	})

	t.Run("stderr captured", func(t *testing.T) {
		res, err := x.Run(ctx, "echo oops 1>&2", 0)
		assert.NilError(t, err)
		assert.Equal(t, "", res.Stdout)
		assert.Equal(t, "oops\n", res.Stderr)
		assert.Assert(t, res.Success)
	})

	t.Run("nonzero exit is a normal completion", func(t *testing.T) {
		res, err := x.Run(ctx, "exit 3", 0)
		assert.NilError(t, err)
		assert.Assert(t, !res.Success)
	})

	t.Run("empty output", func(t *testing.T) {
		res, err := x.Run(ctx, "true", 0)
		assert.NilError(t, err)
		assert.Equal(t, "", res.Stdout)
		assert.Equal(t, "", res.Stderr)
		assert.Assert(t, res.Success)
	})
}

func TestRunTimeout(t *testing.T) {
	x := New(100*time.Millisecond, 64*1024)
	_, err := x.Run(context.Background(), "sleep 10", 0)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRunRequestedTimeoutShrinksCeiling(t *testing.T) {
	x := New(10*time.Second, 64*1024)
	start := time.Now()
	_, err := x.Run(context.Background(), "sleep 10", 100*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Assert(t, time.Since(start) < 5*time.Second)
}

func TestRunOutputLimit(t *testing.T) {
	x := New(10*time.Second, 1024)
	_, err := x.Run(context.Background(), "head -c 1000000 /dev/zero", 0)
	assert.ErrorIs(t, err, ErrOutputLimit)
}
