// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolset implements the gateway's MCP tool handlers.
package toolset

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/shgate/shgate/pkg/gateway/activity"
	"github.com/shgate/shgate/pkg/gateway/config"
	"github.com/shgate/shgate/pkg/gateway/policy"
	"github.com/shgate/shgate/pkg/gateway/shellexec"
	"github.com/shgate/shgate/pkg/mcp/toolspec"
)

type ToolSet struct {
	cfg      *config.Config
	commands policy.CommandPolicy
	paths    policy.PathPolicy
	executor *shellexec.Executor
	activity *activity.Logger
}

func New(cfg *config.Config, logger *activity.Logger) *ToolSet {
	pol := policy.NewSubstringPolicy(cfg.BlockedPatterns, cfg.AllowedDirs)
	return &ToolSet{
		cfg:      cfg,
		commands: pol,
		paths:    pol,
		executor: shellexec.New(time.Duration(*cfg.TimeoutMs)*time.Millisecond, *cfg.MaxOutputBytes),
		activity: logger,
	}
}

func (ts *ToolSet) RegisterServer(server *mcp.Server) error {
	mcp.AddTool(server, toolspec.ExecuteCommand, ts.ExecuteCommand)
	mcp.AddTool(server, toolspec.ListDirectory, ts.ListDirectory)
	mcp.AddTool(server, toolspec.ReadFile, ts.ReadFile)
	return nil
}

// record writes an activity record and proceeds on failure. This is the
// one call site where a log write error is discarded; it still surfaces
// on the diagnostic channel.
func (ts *ToolSet) record(action activity.Action, details map[string]any) {
	if err := ts.activity.Log(action, details); err != nil {
		logrus.WithError(err).Warn("failed to write activity record")
	}
}

// textResult wraps a string in the single text content block that every
// gateway tool returns.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
