package sitescrape

import (
	"context"
	"strings"
)

// Client describes the organization to be classified.
type Client struct {
	Name        string
	Description string

	// WebsiteContent is optional readable text taken from the client's
	// website. Empty means no content is available.
	WebsiteContent string
}

// Validate returns an error if the client cannot be classified.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Errorf(EINVALID, "client name required")
	}
	if strings.TrimSpace(c.Description) == "" {
		return Errorf(EINVALID, "client description required")
	}
	return nil
}

// Classification is the business domain assigned to a client.
type Classification struct {
	DomainName        string   `json:"domain_name"`
	DomainDescription string   `json:"domain_description"`
	Keywords          []string `json:"keywords"`
	ConfidenceScore   float64  `json:"confidence_score"`
}

// Validate returns an error if the classification is incomplete or its
// confidence score lies outside [0, 1].
func (c *Classification) Validate() error {
	if c.DomainName == "" {
		return Errorf(EINVALID, "domain name required")
	}
	if c.ConfidenceScore < 0 || c.ConfidenceScore > 1 {
		return Errorf(EINVALID, "confidence score %v out of range [0, 1]", c.ConfidenceScore)
	}
	return nil
}

// Classifier assigns a business domain to a client.
type Classifier interface {
	// Classify returns the client's classification, or nil with no error
	// when the service is not confident enough to classify it.
	Classify(ctx context.Context, client Client) (*Classification, error)
}
