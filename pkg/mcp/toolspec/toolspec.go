// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolspec defines the MCP (Model Context Protocol) tools
// exposed by the gateway, together with their parameter schemas.
//
// Every tool returns a single text content block. Validation and
// execution failures are reported inside that text (prefixed with
// "Error ..."), never as protocol-level errors: callers parse the text
// to detect failure.
//
// Argument schema validation is derived by the MCP SDK from the
// jsonschema struct tags; the handlers only see well-typed parameters.
package toolspec
