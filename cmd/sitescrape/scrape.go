package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/fs"
	"github.com/fwojciec/sitescrape/yaml"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	mapping, err := yaml.LoadMapping(c.Rules)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
		return err
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, c.URL, mapping, c.Wait)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
		return err
	}

	data, err := formatResult(mapping.Names(), result)
	if err != nil {
		return err
	}
	if _, err := deps.Stdout.Write(data); err != nil {
		return err
	}

	if c.Out != "" {
		path, err := fs.NewWriter(c.Out).WriteResult(c.URL, data)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %s\n", path)
	}

	return nil
}

// formatResult renders result as an indented JSON object with keys in the
// given order.
func formatResult(names []string, result sitescrape.Result) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, name := range names {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(result.Get(name))
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(names) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
