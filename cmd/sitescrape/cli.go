package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Scraper     *scrape.Scraper
	Extractions sitescrape.ExtractionService
	Classifier  sitescrape.Classifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool   `help:"Log fetches and classifier calls to stderr"`
	DB    string `name:"db" env:"SITESCRAPE_DB" default:"${db_path}" help:"Path to the extraction history database"`

	Scrape   ScrapeCmd   `cmd:"" help:"Extract fields from a page using a YAML rules file"`
	Prompt   PromptCmd   `cmd:"" help:"Print the classification prompt for a client"`
	Classify ClassifyCmd `cmd:"" help:"Classify a client's business domain with Gemini"`
	History  HistoryCmd  `cmd:"" help:"List recorded extractions"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string        `arg:"" help:"Page URL"`
	Rules       string        `short:"r" required:"" help:"YAML file mapping field names to selectors"`
	Strategy    string        `short:"s" default:"static" enum:"static,browser" help:"Fetch strategy (static or browser)"`
	Wait        string        `short:"w" help:"CSS selector to wait for (browser only)"`
	WaitTimeout time.Duration `default:"10s" help:"How long to wait for --wait"`
	Timeout     time.Duration `help:"Fetch timeout (default 10s static, 30s browser)"`
	Save        bool          `help:"Record the extraction in the history database"`
	Out         string        `short:"o" type:"path" help:"Also write the JSON result under this directory"`
}

// PromptCmd is the "prompt" subcommand.
type PromptCmd struct {
	Name        string `arg:"" help:"Client name"`
	Description string `arg:"" help:"Client description"`
	Content     string `xor:"source" help:"Website content to include"`
	URL         string `xor:"source" help:"Fetch website content from this URL"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Name        string `arg:"" help:"Client name"`
	Description string `arg:"" help:"Client description"`
	URL         string `help:"Client website to include as context"`
	Model       string `env:"GEMINI_MODEL" default:"${model}" help:"Gemini model"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `help:"Only show extractions of this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of extractions to show"`
	Offset int    `help:"Number of extractions to skip"`
	Full   bool   `help:"Print extracted values"`
}
