// Package slug defines the path-segment addressing scheme used throughout
// docserve. A slug is an ordered list of segments identifying exactly one
// document or one directory in the content tree.
package slug

import (
	"errors"
	"fmt"
	"strings"
)

// Home is the reserved slug whose href collapses to the site root "/".
const Home = "home"

// Slug is an ordered sequence of non-empty path segments. The zero-length
// slug addresses the content root.
type Slug []string

// InvalidError indicates a path string that cannot be parsed into a slug.
type InvalidError struct {
	Path   string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid slug %q: %s", e.Path, e.Reason)
}

// IsInvalid reports whether err is an InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}

// Parse splits a path string into a slug. Separators ("/" and "\") delimit
// segments, surrounding whitespace is trimmed, and empty segments are
// dropped, so "/guide//intro/" parses the same as "guide/intro". Traversal
// tokens are rejected outright; they must never reach the filesystem layer.
func Parse(path string) (Slug, error) {
	raw := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	s := make(Slug, 0, len(raw))
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if seg == ".." || seg == "." {
			return nil, &InvalidError{Path: path, Reason: "traversal token in segment"}
		}
		s = append(s, seg)
	}
	return s, nil
}

// ParseNonRoot is Parse with the additional requirement that the result
// addresses something below the content root.
func ParseNonRoot(path string) (Slug, error) {
	s, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, &InvalidError{Path: path, Reason: "empty slug where a document reference is required"}
	}
	return s, nil
}

// Validate checks an already-constructed slug against the segment invariants.
// Used by the content store as defense in depth before touching storage.
func (s Slug) Validate() error {
	for _, seg := range s {
		if seg == "" {
			return &InvalidError{Path: s.String(), Reason: "empty segment"}
		}
		if seg == ".." || seg == "." {
			return &InvalidError{Path: s.String(), Reason: "traversal token in segment"}
		}
		if strings.ContainsAny(seg, `/\`) {
			return &InvalidError{Path: s.String(), Reason: "separator in segment"}
		}
	}
	return nil
}

// String returns the canonical "a/b/c" form. The root slug renders as "".
func (s Slug) String() string {
	return strings.Join(s, "/")
}

// ToHref maps a slug to its URL path. The reserved "home" slug maps to "/";
// every other slug maps to "/" + its canonical form, which keeps the mapping
// bijective over non-reserved slugs.
func (s Slug) ToHref() string {
	if len(s) == 1 && s[0] == Home {
		return "/"
	}
	return "/" + s.String()
}

// IsRoot reports whether the slug addresses the content root.
func (s Slug) IsRoot() bool { return len(s) == 0 }

// Last returns the final segment, or "" for the root slug.
func (s Slug) Last() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// Child returns a new slug extended by one segment. The receiver is not
// modified and no storage is shared with it.
func (s Slug) Child(name string) Slug {
	child := make(Slug, len(s)+1)
	copy(child, s)
	child[len(s)] = name
	return child
}
