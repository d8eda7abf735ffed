package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpans(t *testing.T) {
	text := "Pay $[___] to {Company}"

	spans := Spans(text)

	if assert.Len(t, spans, 2) {
		assert.Equal(t, "$[___]", text[spans[0].Start:spans[0].End])
		assert.Equal(t, "{Company}", text[spans[1].Start:spans[1].End])
	}
}

func TestSpans_OverlapKeepsOuter(t *testing.T) {
	text := "[[Effective Date]]"

	spans := Spans(text)

	assert.Equal(t, []Span{{Start: 0, End: len(text)}}, spans)
}

func TestSpans_LabelBlank(t *testing.T) {
	text := "Name: _____\n______\n"

	spans := Spans(text)

	if assert.Len(t, spans, 2) {
		assert.Equal(t, "Name: _____", text[spans[0].Start:spans[0].End])
		assert.Equal(t, "______", text[spans[1].Start:spans[1].End])
	}
}

func TestHTML(t *testing.T) {
	got := HTML("Dear <b>{Name}</b>,\nthanks & bye")

	assert.Equal(t,
		`Dear <mark class="placeholder">&lt;b&gt;</mark><mark class="placeholder">{Name}</mark><mark class="placeholder">&lt;/b&gt;</mark>,<br/>thanks &amp; bye`,
		got)
}

func TestHTML_NoPlaceholders(t *testing.T) {
	assert.Equal(t, "a<br/>b", HTML("a\nb"))
	assert.Equal(t, "", HTML(""))
}

func TestHTML_Truncates(t *testing.T) {
	text := strings.Repeat("é", MaxInput)

	got := HTML(text)

	assert.LessOrEqual(t, len(got), MaxInput)
	assert.True(t, strings.HasPrefix(text, got))
}
