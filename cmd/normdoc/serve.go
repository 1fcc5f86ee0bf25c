package main

import (
	"net"
	"strconv"

	normdochttp "github.com/fwojciec/normdoc/http"
	normdocprom "github.com/fwojciec/normdoc/prometheus"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := normdochttp.NewServer(deps.Service)
	server.Logger = deps.Logger
	if c.Metrics {
		server.MetricsHandler = normdocprom.Handler(deps.Registry)
		server.Instrument = deps.Metrics.Middleware
	}

	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	return server.ListenAndServe(deps.Ctx, addr)
}
