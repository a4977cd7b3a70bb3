// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package toolspec

import "github.com/modelcontextprotocol/go-sdk/mcp"

var ExecuteCommand = &mcp.Tool{
	Name:        "execute-command",
	Description: `Executes a shell command on the host, subject to the gateway blocklist and directory allowlist.`,
}

type ExecuteCommandParams struct {
	Command string `json:"command" jsonschema:"The shell command to execute, passed to the system shell verbatim."`
	Timeout *int   `json:"timeout,omitempty" jsonschema:"Timeout in milliseconds. Values above the configured ceiling are clamped down to it."`
}
