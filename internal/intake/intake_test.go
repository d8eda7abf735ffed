package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfill/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		field string
		want  Kind
	}{
		{"Effective Date", KindDate},
		{"Purchase Date", KindDate},
		{"Purchase Amount", KindAmount},
		{"Valuation Cap", KindAmount},
		{"Company Name", KindText},
		{"Governing Law Jurisdiction", KindText},
		{"Investor Email", KindText},
		{"Blank 1", KindFree},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.field))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		ok    bool
	}{
		{"date ok", "Effective Date", "10-31-2025", true},
		{"date short ok", "Effective Date", "1-2-2025", true},
		{"date wrong order", "Effective Date", "2025-10-31", false},
		{"date impossible", "Effective Date", "02-30-2025", false},
		{"amount plain", "Purchase Amount", "250000", true},
		{"amount grouped", "Purchase Amount", "$250,000", true},
		{"amount cents", "Purchase Amount", "12.50", true},
		{"amount words", "Purchase Amount", "lots", false},
		{"amount bad grouping", "Purchase Amount", "25,00", false},
		{"text ok", "Company Name", "Acme & Sons, Inc.", true},
		{"text email", "Investor Email", "jane@fund.com", true},
		{"text starts with digit", "Company Name", "3M", false},
		{"free any", "Blank 1", "anything at all", true},
		{"free empty", "Blank 1", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.field, tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Hint)
		})
	}
}

func TestValidate_Hints(t *testing.T) {
	var verr *ValidationError

	require.True(t, errors.As(Validate("Effective Date", "soon"), &verr))
	assert.Equal(t, DateHint, verr.Hint)

	require.True(t, errors.As(Validate("Purchase Amount", "x"), &verr))
	assert.Equal(t, AmountHint, verr.Hint)

	require.True(t, errors.As(Validate("Company Name", "!"), &verr))
	assert.Equal(t, TextHint, verr.Hint)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Company Name", Title("company_name"))
	assert.Equal(t, "Post Money Valuation", Title("post-money  valuation"))
	assert.Equal(t, "Blank 2", Title("Blank 2"))
	assert.Equal(t, "", Title("__"))
}

func TestQuestion(t *testing.T) {
	assert.Equal(t, "What should we use for “Investor Name”?", Question("investor name"))
}

func TestEvaluate(t *testing.T) {
	placeholders := []string{"Company Name", "Amount", "Investor"}

	p := Evaluate(placeholders, domain.NewValues("Company Name", "Acme", "Amount", "  "))

	assert.Equal(t, "Amount", p.Next)
	assert.Equal(t, []string{"Amount", "Investor"}, p.Missing)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 33, p.Percent)
	assert.False(t, p.Done())
	assert.Contains(t, p.Question, "Amount")
}

func TestEvaluate_AllFilled(t *testing.T) {
	p := Evaluate([]string{"A1", "B1"}, domain.NewValues("B1", "x", "A1", "y"))

	assert.True(t, p.Done())
	assert.Equal(t, "", p.Next)
	assert.Equal(t, "", p.Question)
	assert.Equal(t, 100, p.Percent)
}

func TestEvaluate_NoPlaceholders(t *testing.T) {
	p := Evaluate(nil, nil)

	assert.True(t, p.Done())
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Percent)
}

func TestTitle_Unicode(t *testing.T) {
	assert.Equal(t, "Éditeur Name", Title("éditeur name"))
}
