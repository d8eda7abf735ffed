// Package fill substitutes user values back into template text.
//
// Filling is best-effort and convention-agnostic: each rule targets one
// placeholder convention (brackets, underscore blanks, bare labels,
// labels inside a named block) and rules are not mutually exclusive. A
// field absent under one convention simply does not match.
package fill

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/placeholder"
)

// DefaultRules returns the per-field rules in the order they apply.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "bracket", Apply: fillBrackets},
		{Name: "blank", Apply: fillBlank},
		{Name: "line-label", Apply: fillLineLabel},
		{Name: "base-name", Apply: fillBaseName},
		{Name: "scoped", Apply: fillScopedBlocks},
		{Name: "generic-label", Apply: fillGenericLabels},
	}
}

// DefaultFinishers returns the global passes that run after all fields.
func DefaultFinishers() []Finisher {
	return []Finisher{
		{Name: "investor-header", Apply: fillInvestorHeader},
		{Name: "amount", Apply: fillAmount},
	}
}

var (
	nameWordRe = regexp.MustCompile(`(?i)\bname\b`)
	spacesRe   = regexp.MustCompile(`\s+`)
	investorRe = regexp.MustCompile(`(?im)(^[ \t]*INVESTOR[ \t]*:)[ \t]*$`)
)

// expand escapes a value for use in a regexp replacement template.
func expand(value string) string {
	return strings.ReplaceAll(value, "$", "$$")
}

// lineLabelPattern matches "label:" with nothing but spaces after it on
// the line. Group 1 is the label through the colon.
func lineLabelPattern(prefix, label string) string {
	return `(?im)(` + prefix + regexp.QuoteMeta(label) + `[ \t]*:)[ \t]*$`
}

// replaceLineLabel fills every matching line-ending label.
func replaceLineLabel(text, prefix, label, value string) (string, error) {
	re, err := regexp.Compile(lineLabelPattern(prefix, label))
	if err != nil {
		return text, fmt.Errorf("compile label %q: %w", label, err)
	}
	return re.ReplaceAllString(text, "${1} "+expand(value)), nil
}

// fillBrackets replaces {name}, [[name]], <name> and [name].
func fillBrackets(text string, f domain.Field) (string, error) {
	q := regexp.QuoteMeta(f.Name)
	patterns := []string{
		`\{\s*` + q + `\s*\}`,
		`\[\[\s*` + q + `\s*\]\]`,
		`<\s*` + q + `\s*>`,
		`\[\s*` + q + `\s*\]`,
	}

	out := text
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = re.ReplaceAllLiteralString(out, f.Value)
	}
	return out, nil
}

// fillBlank turns "Name: _____" into "Name: value". The label must start
// on a word boundary, so "Name" leaves "Company Name: ____" alone.
func fillBlank(text string, f domain.Field) (string, error) {
	re, err := regexp.Compile(`(?i)` + wordStart(f.Name) + `(` + regexp.QuoteMeta(f.Name) + `(?:[ \t]*[:\-])?)[ \t]*` + placeholder.BlankRun)
	if err != nil {
		return text, err
	}
	return re.ReplaceAllString(text, "${1} "+expand(f.Value)), nil
}

// wordStart anchors a label on a word boundary when it begins with an
// ASCII word character; \b does not see other letters as word characters.
func wordStart(label string) string {
	r, _ := utf8.DecodeRuneInString(label)
	if r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return `\b`
	}
	return ""
}

// fillLineLabel turns a bare "Name:" line ending into "Name: value".
func fillLineLabel(text string, f domain.Field) (string, error) {
	return replaceLineLabel(text, `\b`, f.Name, f.Value)
}

// BaseLabel strips the first whole word "name" from a field name, so
// "Investor Name" also satisfies a bare "Investor:" line. The boolean is
// false when the field has no such word or nothing is left.
func BaseLabel(field string) (string, bool) {
	loc := nameWordRe.FindStringIndex(field)
	if loc == nil {
		return "", false
	}
	base := field[:loc[0]] + field[loc[1]:]
	base = strings.TrimSpace(spacesRe.ReplaceAllString(base, " "))
	return base, base != ""
}

func fillBaseName(text string, f domain.Field) (string, error) {
	base, ok := BaseLabel(f.Name)
	if !ok {
		return text, nil
	}
	return replaceLineLabel(text, `^[ \t]*`, base, f.Value)
}

// scopedTargets pairs each block with the attribute labels filled inside it.
var scopedTargets = []struct {
	block string
	label string
}{
	{"COMPANY", "Address"},
	{"COMPANY", "Email"},
	{"INVESTOR", "Address"},
	{"INVESTOR", "Email"},
}

func fillScopedBlocks(text string, f domain.Field) (string, error) {
	lc := strings.ToLower(f.Name)
	out := text
	for _, t := range scopedTargets {
		if !strings.Contains(lc, strings.ToLower(t.block)) || !strings.Contains(lc, strings.ToLower(t.label)) {
			continue
		}
		next, err := scoped(out, t.block, t.label, f.Value)
		if err != nil {
			return out, err
		}
		out = next
	}
	return out, nil
}

// genericLabels are filled anywhere for fields mentioning them.
var genericLabels = []string{"Address", "Email"}

// fillGenericLabels fills bare "Address:" and "Email:" lines for fields
// that mention them. Lines inside a block the field does not name are
// left alone, so "Company Address" never lands in the INVESTOR block.
func fillGenericLabels(text string, f domain.Field) (string, error) {
	lc := strings.ToLower(f.Name)
	out := text
	for _, label := range genericLabels {
		if !strings.Contains(lc, strings.ToLower(label)) {
			continue
		}
		re, err := regexp.Compile(lineLabelPattern(`^[ \t]*`, label))
		if err != nil {
			return out, err
		}
		out = replaceOutside(out, re, " "+f.Value, foreignBlocks(out, lc))
	}
	return out, nil
}

// replaceOutside appends suffix after group 1 of every match of re that
// does not start inside one of the excluded spans. Anything after group
// 1 in the match is dropped.
func replaceOutside(text string, re *regexp.Regexp, suffix string, excluded []span) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if inAny(m[0], excluded) {
			continue
		}
		b.WriteString(text[last:m[3]])
		b.WriteString(suffix)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func fillInvestorHeader(text string, values domain.Values) (string, error) {
	out := text
	for _, key := range []string{"Investor Name", "Investor"} {
		v, ok := values.Get(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			continue
		}
		out = investorRe.ReplaceAllString(out, "${1} "+expand(v))
	}
	return out, nil
}

// fillAmount replaces every $[___] with the Amount value. A leading $ on
// the value is dropped so "$250,000" does not become "$$250,000".
func fillAmount(text string, values domain.Values) (string, error) {
	v, ok := values.Get(placeholder.AmountField)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return text, nil
	}
	amount := strings.TrimPrefix(v, "$")
	return placeholder.DollarBlankRe.ReplaceAllLiteralString(text, "$"+amount), nil
}
