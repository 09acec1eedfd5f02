package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with logging.
type LoggingClassifier struct {
	next   sitescrape.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next sitescrape.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the outcome.
func (c *LoggingClassifier) Classify(ctx context.Context, client sitescrape.Client) (cls *sitescrape.Classification, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"client", client.Name,
			"content_bytes", len(client.WebsiteContent),
			"duration", time.Since(begin),
		}
		if cls != nil {
			attrs = append(attrs, "domain", cls.DomainName, "confidence", cls.ConfidenceScore)
		}
		attrs = append(attrs, "err", err)
		c.logger.Info("classify", attrs...)
	}(time.Now())
	return c.next.Classify(ctx, client)
}
