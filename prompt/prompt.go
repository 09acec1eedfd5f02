// Package prompt builds the instruction sent to a language model to
// classify a client into a business domain.
package prompt

import (
	"fmt"

	"github.com/fwojciec/sitescrape"
)

// NoWebsiteContent replaces the website content when none is available.
const NoWebsiteContent = "No website content available"

const template = `
Identify the primary business domain for the following client:
Client Name: %s
Client Description: %s
Website Content: %s

Based on this information, classify the client into one of the following business domains:
- Healthcare, Finance, Retail, Manufacturing, Technology, Education, or another domain that fits better.

Provide the following in your response in JSON format:

    "domain_name": "Identified Business Domain Name",
    "domain_description": "A brief description of the identified domain based on the client info",
    "keywords": ["list", "of", "relevant", "keywords"],
    "confidence_score": 0.95 (confidence score between 0.0 and 1.0)

If you cannot confidently classify the domain, return null or an empty JSON.
`

// Build returns the classification prompt for a client. An empty
// websiteContent is replaced with NoWebsiteContent.
func Build(clientName, clientDescription, websiteContent string) string {
	if websiteContent == "" {
		websiteContent = NoWebsiteContent
	}
	return fmt.Sprintf(template, clientName, clientDescription, websiteContent)
}

// BuildForClient is Build for a sitescrape.Client.
func BuildForClient(c sitescrape.Client) string {
	return Build(c.Name, c.Description, c.WebsiteContent)
}
