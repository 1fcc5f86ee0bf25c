// Package htmltomarkdown renders sanitized document content as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/normdoc"
)

var _ normdoc.Converter = (*Converter)(nil)

// Converter converts DocumentDetail.ContentHTML to Markdown. Regulatory
// documents lean on tables, so the table plugin is always enabled.
type Converter struct {
	md *converter.Converter
}

// NewConverter returns a Converter with the commonmark and table plugins.
func NewConverter() *Converter {
	return &Converter{
		md: converter.NewConverter(converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		)),
	}
}

// Convert renders html as Markdown. Non-breaking spaces become plain spaces
// and runs of blank lines collapse to one.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", normdoc.Errorf(normdoc.EINVALID, "empty HTML input")
	}

	md, err := c.md.ConvertString(html)
	if err != nil {
		return "", normdoc.Errorf(normdoc.EEXTRACT, "failed to convert content to markdown: %w", err)
	}
	return tidy(md), nil
}

func tidy(md string) string {
	md = strings.ReplaceAll(md, "\u00a0", " ")

	lines := strings.Split(md, "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			line = ""
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
