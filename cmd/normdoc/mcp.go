package main

import (
	"log/slog"

	"github.com/fwojciec/normdoc/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Run executes the mcp command. Logs go to stderr; stdout carries the protocol.
func (c *MCPCmd) Run(deps *Dependencies) error {
	stdio := server.NewStdioServer(mcp.NewServer(deps.Service))
	stdio.SetErrorLogger(slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError))
	return stdio.Listen(deps.Ctx, deps.Stdin, deps.Stdout)
}
