// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestValidate(t *testing.T) {
	pol := NewSubstringPolicy(
		[]string{"rm -rf", "sudo", "wget", "curl -o"},
		[]string{"/tmp/shgate"},
	)

	tests := []struct {
		name    string
		command string
		wantErr error
	}{
		{
			name:    "plain command",
			command: "echo hello",
			wantErr: nil,
		},
		{
			name:    "blocked substring",
			command: "sudo apt install x",
			wantErr: ErrBlockedPattern,
		},
		{
			name:    "blocked substring anywhere in the line",
			command: "echo please run rm -rf later",
			wantErr: ErrBlockedPattern,
		},
		{
			name:    "file operation outside allowed directories",
			command: "cat /etc/passwd",
			wantErr: ErrDirectoryNotAllowed,
		},
		{
			name:    "file operation inside allowed directory",
			command: "cat /tmp/shgate/notes.txt",
			wantErr: nil,
		},
		{
			name:    "echo with redirection outside allowed directories",
			command: "echo hi > /var/data/x",
			wantErr: ErrDirectoryNotAllowed,
		},
		{
			name:    "echo with redirection inside allowed directory",
			command: "echo hi > /tmp/shgate/x",
			wantErr: nil,
		},
		{
			name:    "mkdir outside allowed directories",
			command: "mkdir /var/data",
			wantErr: ErrDirectoryNotAllowed,
		},
		{
			name:    "non-file operation bypasses the directory check",
			command: "ls /etc",
			wantErr: nil,
		},
		{
			name:    "file-op token must be a whole word",
			command: "concatenate --help",
			wantErr: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := pol.Validate(test.command)
			if test.wantErr == nil {
				assert.NilError(t, err)
			} else {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestIsAllowed(t *testing.T) {
	pol := NewSubstringPolicy(nil, []string{"/tmp/shgate", "/srv/data"})

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "path under allowed directory",
			path: "/tmp/shgate/sub/file.txt",
			want: true,
		},
		{
			name: "allowed directory itself",
			path: "/tmp/shgate",
			want: true,
		},
		{
			name: "second allowed prefix",
			path: "/srv/data/x",
			want: true,
		},
		{
			name: "path outside allowed directories",
			path: "/etc/passwd",
			want: false,
		},
		{
			// Simple prefix compare: a sibling sharing the prefix string
			// passes. Known caveat of the string-based check.
			name: "sibling sharing the literal prefix",
			path: "/tmp/shgate-other/file",
			want: true,
		},
		{
			name: "relative path",
			path: "tmp/shgate/file",
			want: false,
		},
		{
			name: "empty path",
			path: "",
			want: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, pol.IsAllowed(test.path))
		})
	}
}
