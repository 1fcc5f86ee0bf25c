package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/normdoc"
)

func printError(deps *Dependencies, err error) {
	msg := normdoc.ErrorMessage(err)
	if u := normdoc.ErrorURL(err); u != "" {
		msg += " (" + u + ")"
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummaries prints a numbered list starting after offset.
func printSummaries(w io.Writer, docs []normdoc.DocumentSummary, offset int) {
	for i, d := range docs {
		fmt.Fprintf(w, "  %d. %s\n     %s\n", offset+i+1, d.Title, d.URL)
	}
}
