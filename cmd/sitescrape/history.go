package main

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/fwojciec/sitescrape"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := sitescrape.ExtractionFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	extractions, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescrape.ErrorMessage(err))
		return err
	}

	if len(extractions) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'sitescrape scrape --save' to record one.")
		return nil
	}

	for _, e := range extractions {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-7s  %s  (%d fields)\n",
			e.ID, e.FetchedAt.Format(time.RFC3339), e.Strategy, e.URL, len(e.Result))
		if c.Full {
			for _, name := range slices.Sorted(maps.Keys(e.Result)) {
				v, _ := e.Result[name].MarshalJSON()
				fmt.Fprintf(deps.Stdout, "    %s: %s\n", name, v)
			}
		}
	}

	return nil
}
