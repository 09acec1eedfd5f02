package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/sitescrape"
)

var _ sitescrape.Converter = (*Converter)(nil)

// strippedTags never carry text worth sending to a classifier.
var strippedTags = []string{"img", "picture", "svg", "iframe", "form", "button"}

// Converter turns extracted page content into Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with the CommonMark and table plugins
// enabled and media elements removed.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range strippedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert transforms HTML into Markdown with surrounding whitespace trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitescrape.Errorf(sitescrape.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", sitescrape.WrapError(sitescrape.EINTERNAL, err, "convert to markdown")
	}
	return strings.TrimSpace(md), nil
}
