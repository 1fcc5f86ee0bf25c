package main

import (
	"fmt"

	"github.com/fwojciec/normdoc/fs"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	doc, err := deps.Service.FindDocument(deps.Ctx, c.URL)
	if err != nil {
		printError(deps, err)
		return err
	}

	if c.Out != "" {
		w := fs.NewWriter(c.Out)
		if err := w.CreateDocument(deps.Ctx, doc); err != nil {
			printError(deps, err)
			return err
		}
		path, _ := w.Path(doc)
		fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
		return nil
	}

	if c.JSON {
		return printJSON(deps.Stdout, doc)
	}

	out, err := fs.FormatDocument(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(deps.Stdout, out)
	return err
}
