package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the types command.
func (c *TypesCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, cat := range deps.Service.Categories() {
		fmt.Fprintf(w, "%s\t%s\n", cat.Key, cat.Label)
	}
	return w.Flush()
}
