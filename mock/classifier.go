package mock

import (
	"context"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of sitescrape.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, client sitescrape.Client) (*sitescrape.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, client sitescrape.Client) (*sitescrape.Classification, error) {
	return c.ClassifyFn(ctx, client)
}
