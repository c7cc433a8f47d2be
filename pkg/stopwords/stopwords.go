// Package stopwords provides the case-insensitive stopword set used to hide
// words from a phrase net.
//
// Stopword lists arrive from callers in loosely specified shapes (a JSON
// array from a form field, a YAML list from a file, a comma-separated flag).
// [Parse] accepts any JSON or YAML sequence of strings and degrades to an
// empty set on malformed input instead of failing the request.
package stopwords

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Set is a case-insensitive set of words. The zero value is an empty set.
type Set map[string]struct{}

// New builds a set from words. Blank entries are ignored.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts w into the set.
func (s Set) Add(w string) {
	w = strings.TrimSpace(w)
	if w == "" {
		return
	}
	s[fold(w)] = struct{}{}
}

// Contains reports whether w is in the set, ignoring case.
func (s Set) Contains(w string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[fold(w)]
	return ok
}

// Len returns the number of distinct words.
func (s Set) Len() int { return len(s) }

// Words returns the folded words in no particular order.
func (s Set) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	return out
}

// Parse decodes a JSON or YAML list of strings. Any decoding failure, or a
// document that is not a list of strings, yields an empty set and ok=false.
// Blank input yields an empty set and ok=true.
func Parse(data []byte) (Set, bool) {
	if strings.TrimSpace(string(data)) == "" {
		return Set{}, true
	}
	var words []string
	if err := yaml.Unmarshal(data, &words); err != nil {
		return Set{}, false
	}
	return New(words...), true
}

// ParseList splits a comma-separated flag value.
func ParseList(s string) Set {
	return New(strings.Split(s, ",")...)
}

// Read parses a stopword file. Files holding a JSON/YAML list are decoded
// with [Parse]; anything else is read as one word per line, with lines
// starting with '#' ignored.
func Read(r io.Reader) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if s, ok := Parse(data); ok && s.Len() > 0 {
		return s, nil
	}
	s := Set{}
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	return s, sc.Err()
}

// fold returns the case-folded form of w used as a set key.
func fold(w string) string { return cases.Fold().String(w) }
