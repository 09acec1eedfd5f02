package mock

import "github.com/fwojciec/sitescrape"

var _ sitescrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitescrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
