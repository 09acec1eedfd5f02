package main

import (
	"fmt"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/prompt"
)

// Run executes the prompt command.
func (c *PromptCmd) Run(deps *Dependencies) error {
	content := c.Content
	if c.URL != "" {
		var err error
		content, err = deps.Scraper.WebsiteContent(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, prompt.Build(c.Name, c.Description, content))
	return nil
}
