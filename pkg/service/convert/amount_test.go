package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAmountInput(t *testing.T) {
	valid := []string{"", "0", "1", "1000", "0.5", ".5", "100.", "123.45"}
	for _, raw := range valid {
		assert.True(t, ValidAmountInput(raw), "expected %q to be accepted", raw)
	}

	invalid := []string{"abc", "1,5", "-10", "1.2.3", "1e5", " 100", "100 ", "10a"}
	for _, raw := range invalid {
		assert.False(t, ValidAmountInput(raw), "expected %q to be rejected", raw)
	}
}

func TestAcceptAmountInput(t *testing.T) {
	// Matching input replaces the field verbatim.
	assert.Equal(t, "123.4", AcceptAmountInput("123", "123.4"))
	assert.Equal(t, "", AcceptAmountInput("123", ""))

	// A rejected character leaves the field unchanged.
	assert.Equal(t, "123", AcceptAmountInput("123", "123a"))
	assert.Equal(t, "0.5", AcceptAmountInput("0.5", "0.5.5"))
}

func TestParseAmount(t *testing.T) {
	amount, ok := ParseAmount("100")
	assert.True(t, ok)
	assert.InEpsilon(t, 100.0, amount, 0.0001)

	amount, ok = ParseAmount("0.25")
	assert.True(t, ok)
	assert.InEpsilon(t, 0.25, amount, 0.0001)

	for _, raw := range []string{"", "0", "0.0", ".", "-5", "abc"} {
		_, ok := ParseAmount(raw)
		assert.False(t, ok, "expected %q to be invalid", raw)
	}
}
