package sitescrape

// Content holds the readable content of a page.
type Content struct {
	// Title is the page title taken from metadata.
	Title string

	// HTML is the main content with navigation, footers and other
	// boilerplate removed.
	HTML string
}

// ContentExtractor isolates the main content of a page.
type ContentExtractor interface {
	ExtractContent(html string) (*Content, error)
}

// Converter converts clean HTML into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
