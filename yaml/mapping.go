// Package yaml loads sitescrape.FieldMapping documents written in YAML.
//
// A document maps field names to either a selector string or a rule:
//
//	title: h1.product-title
//	price:
//	  selector: span.price
//	  type: list
//	images:
//	  selector: img.product-image
//	  attribute: src
//	  type: list
//
// Field order follows the document. JSON documents are accepted as well,
// since JSON is a subset of YAML.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/sitescrape"
	yamlv3 "gopkg.in/yaml.v3"
)

// ruleDoc is the object form of a field rule.
type ruleDoc struct {
	Selector  string `yaml:"selector"`
	Type      string `yaml:"type"`
	Attribute string `yaml:"attribute"`
}

var ruleKeys = map[string]bool{"selector": true, "type": true, "attribute": true}

// LoadMapping reads and parses the mapping file at path.
func LoadMapping(path string) (sitescrape.FieldMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, sitescrape.Errorf(sitescrape.ENOTFOUND, "mapping file %q not found", path)
		}
		return nil, err
	}
	defer f.Close()

	return ParseMapping(f)
}

// ParseMapping decodes a mapping document and validates it.
func ParseMapping(r io.Reader) (sitescrape.FieldMapping, error) {
	var doc yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, sitescrape.Errorf(sitescrape.EINVALID, "field mapping is empty")
		}
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "invalid mapping document: %v", err)
	}

	root := &doc
	if root.Kind == yamlv3.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yamlv3.MappingNode {
		return nil, sitescrape.Errorf(sitescrape.EINVALID, "line %d: mapping document must be an object of fields", root.Line)
	}

	mapping := make(sitescrape.FieldMapping, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		rule, err := parseRule(val)
		if err != nil {
			return nil, sitescrape.Errorf(sitescrape.EINVALID, "field %q: %s", key.Value, sitescrape.ErrorMessage(err))
		}
		mapping = append(mapping, sitescrape.Field{Name: key.Value, Rule: rule})
	}

	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	return mapping, nil
}

func parseRule(n *yamlv3.Node) (sitescrape.FieldRule, error) {
	switch n.Kind {
	case yamlv3.ScalarNode:
		return sitescrape.FieldRule{Selector: n.Value, Cardinality: sitescrape.Single}, nil
	case yamlv3.MappingNode:
	default:
		return sitescrape.FieldRule{}, sitescrape.Errorf(sitescrape.EINVALID, "line %d: expected selector or rule object", n.Line)
	}

	for i := 0; i < len(n.Content); i += 2 {
		if k := n.Content[i].Value; !ruleKeys[k] {
			return sitescrape.FieldRule{}, sitescrape.Errorf(sitescrape.EINVALID, "line %d: unknown key %q", n.Content[i].Line, k)
		}
	}

	var doc ruleDoc
	if err := n.Decode(&doc); err != nil {
		return sitescrape.FieldRule{}, sitescrape.Errorf(sitescrape.EINVALID, "line %d: %v", n.Line, err)
	}

	card, err := sitescrape.ParseCardinality(doc.Type)
	if err != nil {
		return sitescrape.FieldRule{}, err
	}

	return sitescrape.FieldRule{
		Selector:    doc.Selector,
		Cardinality: card,
		Attribute:   doc.Attribute,
	}, nil
}
