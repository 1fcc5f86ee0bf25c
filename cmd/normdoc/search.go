package main

import (
	"fmt"

	"github.com/fwojciec/normdoc"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.SearchDocuments(deps.Ctx, normdoc.SearchQuery{Query: c.Query, Category: c.Type})
	if err != nil {
		printError(deps, err)
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, res)
	}

	if res.Total == 0 {
		fmt.Fprintf(deps.Stdout, "No documents match %q.\n", res.Query)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d documents match %q:\n\n", res.Total, res.Query)
	printSummaries(deps.Stdout, res.Documents, 0)
	return nil
}
