package placeholder

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	edgeRe  = regexp.MustCompile(`^[\s\-_:]+|[\s\-_:]+$`)
	spaceRe = regexp.MustCompile(`\s+`)
	wordRe  = regexp.MustCompile(`\w`)
)

// Normalize cleans a raw candidate into a field name. It strips
// whitespace, hyphen, underscore and colon runs from both edges and
// collapses internal whitespace. The boolean is false when the result is
// shorter than two characters or has no word character.
func Normalize(raw string) (string, bool) {
	s := edgeRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) < 2 || !wordRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// orderedSet keeps distinct strings in insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// add inserts s verbatim.
func (o *orderedSet) add(s string) {
	if _, ok := o.seen[s]; ok {
		return
	}
	o.seen[s] = struct{}{}
	o.items = append(o.items, s)
}

// addCandidate normalizes raw and inserts it when valid.
func (o *orderedSet) addCandidate(raw string) {
	if s, ok := Normalize(raw); ok {
		o.add(s)
	}
}
