package main

import (
	"fmt"

	"github.com/fwojciec/normdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	page, err := deps.Service.ListDocuments(deps.Ctx, c.Type, normdoc.Pagination{Page: c.Page, PerPage: c.PerPage})
	if err != nil {
		printError(deps, err)
		if normdoc.ErrorCode(err) == normdoc.EINVALID {
			fmt.Fprintln(deps.Stderr, "Use 'normdoc types' to see supported document types.")
		}
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, page)
	}

	if page.Total == 0 {
		fmt.Fprintf(deps.Stdout, "No documents found for %s.\n", c.Type)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Page %d of %d (%d documents):\n\n", page.Page, page.Pages, page.Total)
	printSummaries(deps.Stdout, page.Documents, (page.Page-1)*page.PerPage)
	return nil
}
