package sitescrape

// Cardinality describes whether a rule expects one or many elements.
type Cardinality string

// Cardinality constants.
const (
	Single Cardinality = "single"
	List   Cardinality = "list"
)

// ParseCardinality converts a cardinality name to a Cardinality.
// An empty name is Single.
func ParseCardinality(s string) (Cardinality, error) {
	switch Cardinality(s) {
	case "", Single:
		return Single, nil
	case List:
		return List, nil
	}
	return "", Errorf(EINVALID, "unknown cardinality %q (want single or list)", s)
}

// FieldRule describes how to extract one field from a document.
type FieldRule struct {
	// Selector is a CSS selector.
	Selector string `json:"selector"`

	// Cardinality selects the first match (Single) or every match (List).
	Cardinality Cardinality `json:"type,omitempty"`

	// Attribute names the attribute to read. When empty, the element's
	// trimmed text content is used instead.
	Attribute string `json:"attribute,omitempty"`
}

// Field is a named FieldRule.
type Field struct {
	Name string
	Rule FieldRule
}

// FieldMapping is an ordered list of named extraction rules.
type FieldMapping []Field

// Validate returns an error if the mapping cannot be extracted.
func (m FieldMapping) Validate() error {
	if len(m) == 0 {
		return Errorf(EINVALID, "field mapping is empty")
	}
	seen := make(map[string]bool, len(m))
	for _, f := range m {
		if f.Name == "" {
			return Errorf(EINVALID, "field name required")
		}
		if seen[f.Name] {
			return Errorf(EINVALID, "duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		if f.Rule.Selector == "" {
			return Errorf(EINVALID, "field %q: selector required", f.Name)
		}
		if _, err := ParseCardinality(string(f.Rule.Cardinality)); err != nil {
			return Errorf(EINVALID, "field %q: %s", f.Name, ErrorMessage(err))
		}
	}
	return nil
}

// Names returns the field names in mapping order.
func (m FieldMapping) Names() []string {
	names := make([]string, len(m))
	for i, f := range m {
		names[i] = f.Name
	}
	return names
}

// FieldExtractor applies a FieldMapping to markup.
type FieldExtractor interface {
	// Extract parses html and evaluates every field of mapping.
	// It never fails as a whole: a field that cannot be evaluated is absent.
	Extract(html string, mapping FieldMapping) Result
}
