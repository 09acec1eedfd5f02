package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sitescrape"
)

// Run executes the classify command. Website content that cannot be fetched
// is reported as a warning and the client is classified without it.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	client := sitescrape.Client{
		Name:        c.Name,
		Description: c.Description,
	}

	if c.URL != "" {
		content, err := deps.Scraper.WebsiteContent(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: no website content: %s\n", sitescrape.ErrorMessage(err))
		}
		client.WebsiteContent = content
	}

	cls, err := deps.Classifier.Classify(deps.Ctx, client)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
		return err
	}

	if cls == nil {
		fmt.Fprintf(deps.Stdout, "Could not classify %q with sufficient confidence.\n", c.Name)
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cls)
}
