// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy applies the blocklist and directory-allowlist checks
// that gate command execution and filesystem access.
//
// The checks are deliberately coarse: commands are matched as plain
// strings (no tokenization, no shell parsing) and paths are compared by
// prefix without canonicalization. A stricter parser-based policy can be
// substituted behind the same interfaces without touching the handlers.
package policy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrBlockedPattern is returned when a command contains a configured
	// blocked substring. The message text is part of the tool contract.
	ErrBlockedPattern = errors.New("Command contains blocked pattern")

	// ErrDirectoryNotAllowed is returned when a file-operation command
	// does not reference any allowed directory.
	ErrDirectoryNotAllowed = errors.New("File operations only allowed in permitted directories")

	// ErrAccessDenied is returned for paths outside the allowed prefixes.
	ErrAccessDenied = errors.New("Access denied - path outside allowed directories")
)

// CommandPolicy validates a raw command line before execution.
type CommandPolicy interface {
	Validate(command string) error
}

// PathPolicy decides whether a filesystem path may be accessed.
type PathPolicy interface {
	IsAllowed(path string) bool
}

// fileOpPattern classifies a command line as a file operation.
// Coarse on purpose: it is a regex over the whole line, not a parse.
var fileOpPattern = regexp.MustCompile(`\b(cp|mv|rm|cat|touch|mkdir|rmdir)\b|echo.*>`)

// SubstringPolicy implements CommandPolicy and PathPolicy with plain
// substring and prefix matching against the configured lists.
type SubstringPolicy struct {
	blockedPatterns []string
	allowedDirs     []string
}

func NewSubstringPolicy(blockedPatterns, allowedDirs []string) *SubstringPolicy {
	return &SubstringPolicy{
		blockedPatterns: blockedPatterns,
		allowedDirs:     allowedDirs,
	}
}

// Validate rejects commands containing a blocked substring, and
// file-operation commands that do not mention an allowed directory.
// Non-file-operation commands bypass the directory check entirely.
func (p *SubstringPolicy) Validate(command string) error {
	for _, pattern := range p.blockedPatterns {
		if strings.Contains(command, pattern) {
			return fmt.Errorf("%w: %q", ErrBlockedPattern, pattern)
		}
	}
	if !fileOpPattern.MatchString(command) {
		return nil
	}
	for _, dir := range p.allowedDirs {
		if strings.Contains(command, dir) {
			return nil
		}
	}
	return ErrDirectoryNotAllowed
}

// IsAllowed reports whether path starts with one of the allowed
// directory prefixes. No canonicalization, no symlink or ".."
// resolution: "/tmp/shgate-other" passes for prefix "/tmp/shgate".
func (p *SubstringPolicy) IsAllowed(path string) bool {
	for _, dir := range p.allowedDirs {
		if strings.HasPrefix(path, dir) {
			return true
		}
	}
	return false
}
