package fill

import (
	"fmt"
	"regexp"
	"strings"
)

// KnownBlocks are the section headers that delimit scoped blocks.
var KnownBlocks = []string{"COMPANY", "INVESTOR"}

type span struct{ start, end int }

func inAny(pos int, spans []span) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}

// headerRe matches a block header line: the bare block name with an
// optional colon in any case, or the upper-case "BLOCK: value" line left
// behind once a field such as Investor has filled the header.
func headerRe(block string) (*regexp.Regexp, error) {
	q := regexp.QuoteMeta(block)
	return regexp.Compile(`(?m)^[ \t]*(?:(?i:` + q + `)[ \t]*:?|` + q + `[ \t]*:[ \t]*\S[^\n]*?)[ \t]*$`)
}

// blockSpan locates a block: from its first header line up to the next
// header line of any other known block, or the end of the text.
func blockSpan(text, block string) (span, bool, error) {
	re, err := headerRe(block)
	if err != nil {
		return span{}, false, err
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return span{}, false, nil
	}

	s := span{start: loc[0], end: len(text)}
	for _, other := range KnownBlocks {
		if strings.EqualFold(other, block) {
			continue
		}
		ore, err := headerRe(other)
		if err != nil {
			return span{}, false, err
		}
		for _, m := range ore.FindAllStringIndex(text, -1) {
			if m[0] > s.start {
				if m[0] < s.end {
					s.end = m[0]
				}
				break
			}
		}
	}
	return s, true, nil
}

// foreignBlocks returns the spans of known blocks that fieldLower does
// not mention. A field that mentions no block has no foreign blocks.
func foreignBlocks(text, fieldLower string) []span {
	var mentioned, others []string
	for _, b := range KnownBlocks {
		if strings.Contains(fieldLower, strings.ToLower(b)) {
			mentioned = append(mentioned, b)
		} else {
			others = append(others, b)
		}
	}
	if len(mentioned) == 0 {
		return nil
	}

	var spans []span
	for _, b := range others {
		if s, ok, err := blockSpan(text, b); err == nil && ok {
			spans = append(spans, s)
		}
	}
	return spans
}

func scoped(text, block, label, value string) (string, error) {
	s, ok, err := blockSpan(text, block)
	if err != nil {
		return text, err
	}
	if !ok {
		return text, nil
	}

	re, err := regexp.Compile(lineLabelPattern(`^[ \t]*`, label))
	if err != nil {
		return text, fmt.Errorf("compile label %q: %w", label, err)
	}

	slice := text[s.start:s.end]
	m := re.FindStringSubmatchIndex(slice)
	if m == nil {
		return text, nil
	}
	filled := slice[:m[3]] + " " + value + slice[m[1]:]
	return text[:s.start] + filled + text[s.end:], nil
}

// Scoped fills the first bare "label:" line inside the named block and
// leaves the rest of the text untouched. Text without the block header,
// or any failure, yields the input unchanged.
func Scoped(text, block, label, value string) string {
	out, err := scoped(text, block, label, value)
	if err != nil {
		return text
	}
	return out
}
