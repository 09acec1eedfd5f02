package sitescrape

import (
	"context"
	"time"
)

// Extraction is a recorded extraction run.
type Extraction struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Strategy    Strategy  `json:"strategy"`
	Result      Result    `json:"result"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`

	// HTML is the fetched markup. It is hashed on create and not stored.
	HTML string `json:"-"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if _, err := ParseStrategy(string(e.Strategy)); err != nil {
		return err
	}
	return nil
}

// ExtractionService represents a service for managing recorded extractions.
type ExtractionService interface {
	// CreateExtraction records a new extraction.
	CreateExtraction(ctx context.Context, e *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter, newest first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction permanently removes an extraction.
	// Returns ENOTFOUND if the extraction does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
