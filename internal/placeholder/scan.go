// Package placeholder detects fill-in fields in template text.
//
// Detection is a fixed battery of independent pattern passes. Each pass
// adds candidates to an insertion-ordered set, so the result lists fields
// in first-discovery order across passes. A pass that fails is skipped;
// Scan itself never fails.
package placeholder

import (
	"fmt"
	"log/slog"
	"regexp"
)

// nameChars is the character class of a label: a letter followed by
// letters, digits, spaces and common punctuation found in legal labels.
const nameChars = `[A-Za-z][A-Za-z0-9 .,'&\-/()]+?`

// BlankRun matches a fill-in blank: three or more underscore or space
// characters, starting and ending with an underscore, on a single line.
const BlankRun = `_[_ \t]+_`

var (
	curlyRe         = regexp.MustCompile(`\{\s*([^}]+?)\s*\}`)
	doubleBracketRe = regexp.MustCompile(`\[\[\s*([^\]]+?)\s*\]\]`)
	angleRe         = regexp.MustCompile(`<\s*([^>]+?)\s*>`)
	bracketRe       = regexp.MustCompile(`\[\s*([^\[\]\n]{2,})\s*\]`)

	// DollarBlankRe matches a currency blank such as $[___].
	DollarBlankRe = regexp.MustCompile(`\$\[\s*_+\s*\]`)

	labelBlankRe = regexp.MustCompile(`(` + nameChars + `)[ \t]*[:\-]?[ \t]*` + BlankRun)
	labelLineRe  = regexp.MustCompile(`(?m)^(` + nameChars + `):[ \t]*$`)
	blankLineRe  = regexp.MustCompile(`(?m)^[ \t]*_[_ \t]{2,}[ \t]*$`)

	companyTagRe   = regexp.MustCompile(`(?m)^[ \t]*\[COMPANY\][ \t]*$`)
	companyLabelRe = regexp.MustCompile(`(?m)^[ \t]*COMPANY[ \t]*:[ \t]*$`)
	investorRe     = regexp.MustCompile(`(?m)^[ \t]*INVESTOR[ \t]*:[ \t]*$`)
)

// AmountField is the field reported for a $[___] currency blank.
const AmountField = "Amount"

// pass is one detection strategy.
type pass struct {
	name string
	run  func(text string, set *orderedSet)
}

// passes run in this order; order decides listing order only.
var passes = []pass{
	{"curly", captureAll(curlyRe)},
	{"double-bracket", captureAll(doubleBracketRe)},
	{"angle", captureAll(angleRe)},
	{"bracket", captureAll(bracketRe)},
	{"dollar-blank", scanDollarBlank},
	{"label-blank", captureAll(labelBlankRe)},
	{"label-line", captureAll(labelLineRe)},
	{"blank-line", scanBlankLines},
	{"block-shortcuts", scanBlockShortcuts},
}

func captureAll(re *regexp.Regexp) func(string, *orderedSet) {
	return func(text string, set *orderedSet) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			set.addCandidate(m[1])
		}
	}
}

func scanDollarBlank(text string, set *orderedSet) {
	if DollarBlankRe.MatchString(text) {
		set.addCandidate(AmountField)
	}
}

func scanBlankLines(text string, set *orderedSet) {
	for i := range blankLineRe.FindAllStringIndex(text, -1) {
		set.addCandidate(fmt.Sprintf("Blank %d", i+1))
	}
}

func scanBlockShortcuts(text string, set *orderedSet) {
	if companyTagRe.MatchString(text) || companyLabelRe.MatchString(text) {
		set.add("Company Address")
		set.add("Company Email")
	}
	if investorRe.MatchString(text) {
		set.add("Investor")
		set.add("Investor Address")
		set.add("Investor Email")
	}
}

// Scan returns the distinct field names found in text in first-discovery
// order. It never returns nil.
func Scan(text string) []string {
	set := newOrderedSet()
	for _, p := range passes {
		runPass(p, text, set)
	}
	if set.items == nil {
		return []string{}
	}
	return set.items
}

func runPass(p pass, text string, set *orderedSet) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("placeholder pass skipped", "pass", p.name, "panic", r)
		}
	}()
	p.run(text, set)
}
