// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shgate/shgate/pkg/gateway/policy"
	"github.com/shgate/shgate/pkg/mcp/toolspec"
)

// ListDirectory lists the entries of an allowed directory, one per
// line, tagged "[DIR]" or "[FILE]". List requests are not recorded in
// the activity log; only command executions are.
func (ts *ToolSet) ListDirectory(_ context.Context,
	_ *mcp.CallToolRequest, args toolspec.ListDirectoryParams,
) (*mcp.CallToolResult, any, error) {
	if !ts.paths.IsAllowed(args.Path) {
		return textResult("Error listing directory: " + policy.ErrAccessDenied.Error()), nil, nil
	}
	ents, err := os.ReadDir(args.Path)
	if err != nil {
		return textResult("Error listing directory: " + err.Error()), nil, nil
	}
	if len(ents) == 0 {
		return textResult("Directory is empty"), nil, nil
	}
	lines := make([]string, len(ents))
	for i, ent := range ents {
		if ent.IsDir() {
			lines[i] = "[DIR] " + ent.Name()
		} else {
			lines[i] = "[FILE] " + ent.Name()
		}
	}
	return textResult(strings.Join(lines, "\n")), nil, nil
}

// ReadFile returns the raw content of an allowed file. Like
// ListDirectory, read requests are not recorded in the activity log.
func (ts *ToolSet) ReadFile(_ context.Context,
	_ *mcp.CallToolRequest, args toolspec.ReadFileParams,
) (*mcp.CallToolResult, any, error) {
	if !ts.paths.IsAllowed(args.Path) {
		return textResult("Error reading file: " + policy.ErrAccessDenied.Error()), nil, nil
	}
	b, err := os.ReadFile(args.Path)
	if err != nil {
		return textResult("Error reading file: " + err.Error()), nil, nil
	}
	return textResult(string(b)), nil, nil
}
