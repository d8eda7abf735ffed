package fill

import (
	"fmt"
	"log/slog"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

// Rule rewrites the text for a single field. Apply must be pure: it sees
// only the text produced by the previous rule and returns the next text.
type Rule struct {
	Name  string
	Apply func(text string, field domain.Field) (string, error)
}

// Finisher rewrites the text once after every field has been applied.
type Finisher struct {
	Name  string
	Apply func(text string, values domain.Values) (string, error)
}

// Pipeline is an ordered list of field rules followed by finishers.
// Each stage is isolated: an error or panic in one stage leaves the text
// as it was before that stage and the pipeline moves on.
type Pipeline struct {
	rules     []Rule
	finishers []Finisher
	logger    *slog.Logger
}

// NewPipeline creates a pipeline from explicit stages.
func NewPipeline(rules []Rule, finishers []Finisher) *Pipeline {
	return &Pipeline{
		rules:     rules,
		finishers: finishers,
	}
}

// DefaultPipeline returns the standard rule order.
func DefaultPipeline() *Pipeline {
	return NewPipeline(DefaultRules(), DefaultFinishers())
}

// WithLogger sets the logger used to report skipped stages. Without one
// the process default logger is used.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	p.logger = logger
	return p
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return slog.Default()
}

// List returns stage names in execution order, field rules first.
func (p *Pipeline) List() []string {
	names := make([]string, 0, len(p.rules)+len(p.finishers))
	for _, r := range p.rules {
		names = append(names, r.Name)
	}
	for _, f := range p.finishers {
		names = append(names, f.Name)
	}
	return names
}

// Fill applies every rule to every non-blank field in order, then runs
// the finishers. It never fails; with no usable values the text is
// returned unchanged.
func (p *Pipeline) Fill(text string, values domain.Values) string {
	present := values.Present()
	if len(present) == 0 {
		return text
	}

	out := text
	for _, field := range present {
		for _, rule := range p.rules {
			out = p.run(rule.Name, field.Name, out, func(s string) (string, error) {
				return rule.Apply(s, field)
			})
		}
	}
	for _, fin := range p.finishers {
		out = p.run(fin.Name, "", out, func(s string) (string, error) {
			return fin.Apply(s, present)
		})
	}
	return out
}

func (p *Pipeline) run(stage, field, text string, apply func(string) (string, error)) (out string) {
	defer func() {
		if r := recover(); r != nil {
			p.log().Debug("fill stage panicked", "stage", stage, "field", field, "panic", fmt.Sprint(r))
			out = text
		}
	}()

	next, err := apply(text)
	if err != nil {
		p.log().Debug("fill stage skipped", "stage", stage, "field", field, "error", err)
		return text
	}
	return next
}

var defaultPipeline = DefaultPipeline()

// Fill applies the default pipeline.
func Fill(text string, values domain.Values) string {
	return defaultPipeline.Fill(text, values)
}
