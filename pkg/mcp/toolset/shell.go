// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package toolset

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shgate/shgate/pkg/gateway/activity"
	"github.com/shgate/shgate/pkg/mcp/toolspec"
)

// noOutputMessage is returned when a command completes with neither
// stdout nor stderr.
const noOutputMessage = "Command executed successfully (no output)"

// ExecuteCommand validates and runs a shell command, returning the
// captured output as text. Validation and execution failures are
// reported in the text body, not as protocol errors.
func (ts *ToolSet) ExecuteCommand(ctx context.Context,
	_ *mcp.CallToolRequest, args toolspec.ExecuteCommandParams,
) (*mcp.CallToolResult, any, error) {
	requested := map[string]any{"command": args.Command}
	if args.Timeout != nil {
		requested["timeout"] = *args.Timeout
	}
	ts.record(activity.CommandRequested, requested)

	if err := ts.commands.Validate(args.Command); err != nil {
		ts.record(activity.CommandError, map[string]any{
			"command": args.Command,
			"error":   err.Error(),
		})
		return textResult("Error executing command: " + err.Error()), nil, nil
	}

	var timeout time.Duration
	if args.Timeout != nil {
		timeout = time.Duration(*args.Timeout) * time.Millisecond
	}
	res, err := ts.executor.Run(ctx, args.Command, timeout)
	if err != nil {
		ts.record(activity.CommandError, map[string]any{
			"command": args.Command,
			"error":   err.Error(),
		})
		return textResult("Error executing command: " + err.Error()), nil, nil
	}

	ts.record(activity.CommandExecuted, map[string]any{
		"command":     args.Command,
		"success":     res.Success,
		"output_size": len(res.Stdout) + len(res.Stderr),
	})
	return textResult(formatOutput(res.Stdout, res.Stderr)), nil, nil
}

func formatOutput(stdout, stderr string) string {
	var b strings.Builder
	if stdout != "" {
		b.WriteString("Standard Output:\n" + stdout + "\n")
	}
	if stderr != "" {
		b.WriteString("Standard Error:\n" + stderr + "\n")
	}
	if b.Len() == 0 {
		return noOutputMessage
	}
	return b.String()
}
