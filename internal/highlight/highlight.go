// Package highlight renders template text as HTML with placeholder
// patterns marked, for the preview shown next to the intake chat.
package highlight

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxInput caps the number of bytes rendered.
const MaxInput = 200000

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\[\s*_+\s*\]`),
	regexp.MustCompile(`\{\s*[^{}\n]{1,100}\s*\}`),
	regexp.MustCompile(`\[\[\s*[^\]\n]{1,100}\s*\]\]`),
	regexp.MustCompile(`\[\s*[^\[\]\n]{1,100}\s*\]`),
	regexp.MustCompile(`<\s*[^<>\n]{1,100}\s*>`),
	regexp.MustCompile(`[A-Za-z][A-Za-z0-9 .,'&\-/()]+?[ \t]*:[ \t]*_[_ \t]+_`),
	regexp.MustCompile(`(?m)^[ \t]*_[_ \t]{2,}[ \t]*$`),
}

// Span is a half-open byte range of the input.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Spans returns the non-overlapping placeholder ranges in text, sorted
// by start. When two matches overlap the earlier, then longer, one wins.
func Spans(text string) []Span {
	var all []Span
	for _, re := range patterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			all = append(all, Span{Start: m[0], End: m[1]})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})

	out := make([]Span, 0, len(all))
	end := -1
	for _, s := range all {
		if s.Start < end {
			continue
		}
		out = append(out, s)
		end = s.End
	}
	return out
}

// HTML escapes text, wraps each placeholder span in <mark> and turns
// newlines into <br/>. Input beyond MaxInput bytes is dropped.
func HTML(text string) string {
	text = truncate(text, MaxInput)

	var b strings.Builder
	last := 0
	for _, s := range Spans(text) {
		writeEscaped(&b, text[last:s.Start])
		b.WriteString(`<mark class="placeholder">`)
		writeEscaped(&b, text[s.Start:s.End])
		b.WriteString(`</mark>`)
		last = s.End
	}
	writeEscaped(&b, text[last:])
	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	b.WriteString(strings.ReplaceAll(html.EscapeString(s), "\n", "<br/>"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
