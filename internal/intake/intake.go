// Package intake drives the question-and-answer collection of field
// values: which field to ask for next, how to phrase the question, and
// whether an answer looks right for the kind of field.
package intake

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

// Kind is the broad value type expected for a field, guessed from its name.
type Kind string

const (
	KindDate   Kind = "date"
	KindAmount Kind = "amount"
	KindText   Kind = "text"
	KindFree   Kind = "free"
)

var (
	looksDateRe   = regexp.MustCompile(`(?i)date|effective`)
	looksAmountRe = regexp.MustCompile(`(?i)amount|price|payment|purchase|cap`)
	looksTextRe   = regexp.MustCompile(`(?i)name|jurisdiction|state|title|governing|city|country|address|email`)

	dateRe   = regexp.MustCompile(`^(0?[1-9]|1[0-2])-(0?[1-9]|[12]\d|3[01])-\d{4}$`)
	amountRe = regexp.MustCompile(`^\$?\d{1,3}(,\d{3})*(\.\d{1,2})?$|^\$?\d+(\.\d{1,2})?$`)
	textRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z\s&.,\-'\d@]*$`)

	separatorRe = regexp.MustCompile(`[_-]+`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Classify guesses the kind of a field from its name. Date wins over
// amount, amount over text.
func Classify(field string) Kind {
	switch {
	case looksDateRe.MatchString(field):
		return KindDate
	case looksAmountRe.MatchString(field):
		return KindAmount
	case looksTextRe.MatchString(field):
		return KindText
	default:
		return KindFree
	}
}

// ValidationError explains why an answer was rejected.
type ValidationError struct {
	Field string
	Kind  Kind
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value for %q: %s", e.Kind, e.Field, e.Hint)
}

// Hints shown to the user for each kind of rejected answer.
const (
	DateHint   = "Please use MM-DD-YYYY (e.g., 10-31-2025)."
	AmountHint = "Use a number (e.g., 250000 or $250,000)."
	TextHint   = "Use letters/spaces (& . , - ' allowed)."
)

// Validate checks value against the kind of field. It returns a
// *ValidationError when the value does not fit.
func Validate(field, value string) error {
	v := strings.TrimSpace(value)
	kind := Classify(field)

	var ok bool
	var hint string
	switch kind {
	case KindDate:
		ok, hint = validDate(v), DateHint
	case KindAmount:
		ok, hint = amountRe.MatchString(v), AmountHint
	case KindText:
		ok, hint = textRe.MatchString(v), TextHint
	default:
		ok = v != ""
		hint = "A value is required."
	}
	if ok {
		return nil
	}
	return &ValidationError{Field: field, Kind: kind, Hint: hint}
}

func validDate(v string) bool {
	if !dateRe.MatchString(v) {
		return false
	}
	_, err := time.Parse("1-2-2006", v)
	return err == nil
}

// Title turns a field name into display form: separators become spaces
// and each word is capitalized.
func Title(field string) string {
	s := separatorRe.ReplaceAllString(field, " ")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Question is the prompt used to ask for a field.
func Question(field string) string {
	return fmt.Sprintf("What should we use for “%s”?", Title(field))
}

// Progress summarizes how much of a document has been answered.
type Progress struct {
	Next     string   `json:"field"`
	Question string   `json:"question,omitempty"`
	Missing  []string `json:"missing"`
	Total    int      `json:"total"`
	Percent  int      `json:"percent"`
}

// Done reports whether every field has a value.
func (p Progress) Done() bool {
	return len(p.Missing) == 0
}

// Evaluate computes progress over placeholders given the answers so far.
// Next is the first unanswered placeholder in document order.
func Evaluate(placeholders []string, values domain.Values) Progress {
	missing := make([]string, 0, len(placeholders))
	for _, p := range placeholders {
		if p == "" {
			continue
		}
		if !values.Filled(p) {
			missing = append(missing, p)
		}
	}

	total := 0
	for _, p := range placeholders {
		if p != "" {
			total++
		}
	}

	answered := total - len(missing)
	percent := int(math.Round(float64(answered) / float64(max(total, 1)) * 100))

	prog := Progress{Missing: missing, Total: total, Percent: percent}
	if len(missing) > 0 {
		prog.Next = missing[0]
		prog.Question = Question(missing[0])
	}
	return prog
}
