package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Fields is the schema-less frontmatter mapping. Authors put arbitrary keys
// here; accessors fail closed, returning zero values for absent or
// wrong-typed keys instead of panicking.
type Fields map[string]any

// Parse parses raw YAML frontmatter (without --- delimiters) into Fields.
// Empty input yields an empty, non-nil map.
func Parse(frontmatter []byte) (Fields, error) {
	if len(frontmatter) == 0 {
		return Fields{}, nil
	}

	var fields Fields
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

// String returns the string value for key, or "" when the key is absent,
// nil, or not a string.
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// StringSlice returns the list value for key. A scalar string is promoted to
// a one-element list; anything else yields nil.
func (f Fields) StringSlice(key string) []string {
	v, ok := f[key]
	if !ok || v == nil {
		return nil
	}
	switch vv := v.(type) {
	case string:
		return []string{vv}
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Title returns the "title" field, or "" when absent or blank.
func (f Fields) Title() string {
	return strings.TrimSpace(f.String("title"))
}

// Description returns the "description" field.
func (f Fields) Description() string {
	return strings.TrimSpace(f.String("description"))
}

// Keywords returns the "keywords" field as a list.
func (f Fields) Keywords() []string {
	return f.StringSlice("keywords")
}
