package currency

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	got := Format(decimal.NewFromFloat(1234.56))

	assert.True(t, strings.HasSuffix(got, "€"), "display price %q must end with the euro sign", got)
	assert.Contains(t, got, "234,56", "the French locale uses a comma decimal separator, got %q", got)
	// thousands are grouped with a locale-specific space, never run together
	assert.NotContains(t, got, "1234")
}

func TestFormat_PadsToTwoFractionDigits(t *testing.T) {
	got := Format(decimal.NewFromInt(95))
	assert.Contains(t, got, "95,00")
}

func TestFormat_Zero(t *testing.T) {
	got := Format(decimal.Zero)
	assert.Contains(t, got, "0,00")
}
