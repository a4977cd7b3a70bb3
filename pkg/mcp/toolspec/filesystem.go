// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package toolspec

import "github.com/modelcontextprotocol/go-sdk/mcp"

var ListDirectory = &mcp.Tool{
	Name:        "list_directory",
	Description: `Lists the entries of a directory under one of the allowed directory prefixes.`,
}

type ListDirectoryParams struct {
	Path string `json:"path" jsonschema:"The absolute path to the directory to list."`
}

var ReadFile = &mcp.Tool{
	Name:        "read_file",
	Description: `Reads and returns the content of a file under one of the allowed directory prefixes.`,
}

type ReadFileParams struct {
	Path string `json:"path" jsonschema:"The absolute path to the file to read."`
}
