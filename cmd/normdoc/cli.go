package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/normdoc"
	normdocprom "github.com/fwojciec/normdoc/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Service  normdoc.DocumentService
	Metrics  *normdocprom.Metrics
	Registry *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Origin     string        `default:"https://meganorm.ru" env:"NORMDOC_ORIGIN" help:"Document site origin"`
	LogLevel   string        `default:"info" enum:"debug,info,warn,error" env:"NORMDOC_LOG_LEVEL" help:"Log level (${enum})"`
	LogFormat  string        `default:"text" enum:"text,json" env:"NORMDOC_LOG_FORMAT" help:"Log format (${enum})"`
	Timeout    time.Duration `default:"30s" env:"NORMDOC_TIMEOUT" help:"Timeout for each upstream request"`
	Attempts   int           `default:"3" env:"NORMDOC_ATTEMPTS" help:"Upstream fetch attempts"`
	RetryDelay time.Duration `default:"2s" env:"NORMDOC_RETRY_DELAY" help:"Pause between upstream fetch attempts"`
	RPS        float64       `name:"rps" default:"2" env:"NORMDOC_RPS" help:"Upstream requests per second per host (0 disables the limit)"`
	Burst      int           `default:"1" env:"NORMDOC_BURST" help:"Upstream requests per host allowed back to back"`

	Serve  ServeCmd  `cmd:"" help:"Serve the JSON API"`
	List   ListCmd   `cmd:"" help:"List documents of one type"`
	Get    GetCmd    `cmd:"" help:"Fetch and extract one document"`
	Search SearchCmd `cmd:"" help:"Search document titles"`
	Types  TypesCmd  `cmd:"" help:"List supported document types"`
	MCP    MCPCmd    `cmd:"" name:"mcp" help:"Serve the query tools over MCP on stdin/stdout"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host    string `default:"0.0.0.0" env:"HOST" help:"Listen host"`
	Port    int    `default:"5000" env:"PORT" help:"Listen port"`
	Metrics bool   `default:"true" negatable:"" help:"Expose Prometheus metrics at /metrics"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type    string `arg:"" help:"Document type key (see 'normdoc types')"`
	Page    int    `default:"1" help:"Page number"`
	PerPage int    `default:"20" help:"Documents per page"`
	JSON    bool   `help:"Print JSON"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL  string `arg:"" help:"Document page URL"`
	Out  string `short:"o" type:"path" help:"Write the document as markdown under this directory"`
	JSON bool   `help:"Print JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Text to look for in document titles"`
	Type  string `short:"t" default:"all" help:"Document type key, or 'all'"`
	JSON  bool   `help:"Print JSON"`
}

// TypesCmd is the "types" subcommand.
type TypesCmd struct{}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct{}
