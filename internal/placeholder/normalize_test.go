package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"plain", "Company Name", "Company Name", true},
		{"edge punctuation", " -_:Company Name:_- ", "Company Name", true},
		{"internal whitespace", "Company \t  Name", "Company Name", true},
		{"newline collapsed", "Purchase\nAmount", "Purchase Amount", true},
		{"too short", " a ", "", false},
		{"underscores only", "_____", "", false},
		{"no word char", "$$", "", false},
		{"inner underscore kept", "field_name", "field_name", true},
		{"two chars", "ID", "ID", true},
		{"unicode", "Société", "Société", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderedSet(t *testing.T) {
	set := newOrderedSet()
	set.addCandidate("B")
	set.addCandidate("Bee")
	set.addCandidate(" Bee ")
	set.addCandidate("bee")
	set.add("Aa")

	assert.Equal(t, []string{"Bee", "bee", "Aa"}, set.items)
}
