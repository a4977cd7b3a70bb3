// SPDX-FileCopyrightText: Copyright The Shgate Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shgate/shgate/pkg/gateway/activity"
	"github.com/shgate/shgate/pkg/gateway/config"
	"github.com/shgate/shgate/pkg/mcp/toolset"
	"github.com/shgate/shgate/pkg/version"
)

func main() {
	if err := newApp().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "shgate",
		Short:         "Local command-execution gateway over the Model Context Protocol",
		Version:       strings.TrimPrefix(version.Version, "v"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return processGlobalFlags(cmd)
		},
	}
	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "debug mode")
	flags.String("log-level", "", "set the logging level [trace, debug, info, warn, error]")
	flags.String("log-format", "text", "set the logging format [text, json]")
	flags.String("config", "", "path to the gateway configuration file (YAML)")
	cmd.AddCommand(
		newInfoCommand(),
		newServeCommand(),
		newGenDocCommand(),
	)
	return cmd
}

func processGlobalFlags(cmd *cobra.Command) error {
	// --log-level will override --debug
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		lvl, err := logrus.ParseLevel(l)
		if err != nil {
			return err
		}
		logrus.SetLevel(lvl)
	}
	// Diagnostics go to stderr; stdout is reserved for the MCP transport.
	logFormat, _ := cmd.Flags().GetString("log-format")
	switch logFormat {
	case "json":
		logrus.StandardLogger().SetFormatter(new(logrus.JSONFormatter))
	case "text":
		formatter := new(logrus.TextFormatter)
		formatter.FullTimestamp = true
		formatter.ForceColors = isatty.IsTerminal(os.Stderr.Fd())
		logrus.StandardLogger().SetFormatter(formatter)
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}

func newServer() *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "shgate",
		Title:   "Shgate, a gateway for local command executions and file reads",
		Version: version.Version,
	}
	serverOpts := &mcp.ServerOptions{
		Instructions: `This MCP server runs shell commands and reads files on the local host,
subject to a substring blocklist, a directory allowlist, a timeout
ceiling, and an output size cap. Every command execution is recorded
in an append-only activity log.

Failures are reported inside the returned text (prefixed with "Error"),
not as protocol errors.
`,
	}
	return mcp.NewServer(impl, serverOpts)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	return config.Load(cfgPath)
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio",
		Long: `Serve MCP over stdio.

Expected to be executed via an AI agent, not by a human`,
		Args: cobra.NoArgs,
		RunE: serveAction,
	}
	return cmd
}

func serveAction(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := activity.New(cfg.ActivityLog)
	if err := logger.Log(activity.ServerStart, map[string]any{
		"allowed_dirs": cfg.AllowedDirs,
		"version":      version.Version,
	}); err != nil {
		logrus.WithError(err).Warn("failed to write activity record")
	}
	ts := toolset.New(cfg, logger)
	server := newServer()
	if err := ts.RegisterServer(server); err != nil {
		return err
	}
	transport := &mcp.StdioTransport{}
	runErr := server.Run(ctx, transport)
	if ctx.Err() != nil {
		// Interrupted: record the shutdown and exit 0.
		runErr = nil
	}
	if err := logger.Log(activity.ServerShutdown, nil); err != nil {
		logrus.WithError(err).Warn("failed to write activity record")
	}
	return runErr
}

func newInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about the MCP server",
		Args:  cobra.NoArgs,
		RunE:  infoAction,
	}
	return cmd
}

func infoAction(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	info, err := inspectInfo(ctx, cfg)
	if err != nil {
		return err
	}
	j, err := json.MarshalIndent(info, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(j))
	return err
}

func inspectInfo(ctx context.Context, cfg *config.Config) (*Info, error) {
	ts := toolset.New(cfg, activity.New(os.DevNull))
	server := newServer()
	if err := ts.RegisterServer(server); err != nil {
		return nil, err
	}
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, err
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "client"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, err
	}
	toolsResult, err := clientSession.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, err
	}
	if err = clientSession.Close(); err != nil {
		return nil, err
	}
	if err = serverSession.Wait(); err != nil {
		return nil, err
	}
	info := &Info{
		Tools: toolsResult.Tools,
	}
	return info, nil
}

type Info struct {
	Tools []*mcp.Tool `json:"tools"`
}

func newGenDocCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "generate-doc DIR",
		Short:  "Generate documentation pages",
		Args:   cobra.MinimumNArgs(1),
		RunE:   genDocAction,
		Hidden: true,
	}
	return cmd
}

func genDocAction(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fName := filepath.Join(dir, "tools.md")
	f, err := os.Create(fName)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprint(f, `---
title: MCP tools
---
Shgate exposes three MCP tools for running shell commands, listing
directories, and reading files on the local host, gated by a substring
blocklist and a directory allowlist.

`)
	info, err := inspectInfo(ctx, config.Default())
	if err != nil {
		return err
	}
	for _, tool := range info.Tools {
		fmt.Fprintf(f, "## `%s`\n\n", tool.Name)
		if tool.Title != "" {
			fmt.Fprintf(f, "### Title\n\n%s\n\n", tool.Title)
		}
		if tool.Description != "" {
			fmt.Fprintf(f, "### Description\n\n%s\n\n", tool.Description)
		}
		if tool.InputSchema != nil {
			fmt.Fprint(f, "### Input Schema\n\n")
			schema, err := json.MarshalIndent(tool.InputSchema, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintf(f, "```json\n%s\n```\n\n", string(schema))
		}
	}
	return f.Close()
}
