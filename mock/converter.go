package mock

import "github.com/fwojciec/normdoc"

var _ normdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of normdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
