package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Regexp(t, `^\$ 1[.,]234[.,]50$`, Format(decimal.RequireFromString("1234.5")))
	assert.Regexp(t, `^\$ 0[.,]00$`, Format(decimal.Zero))
}

func TestQuantity_Redondea(t *testing.T) {
	assert.Regexp(t, `^7[.,]33$`, Quantity(decimal.RequireFromString("7.3333")))
}
