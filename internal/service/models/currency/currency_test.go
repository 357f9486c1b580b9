package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	for _, want := range []Currency{CurrencyBRL, CurrencyUSD} {
		got, err := ParseCurrency(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseCurrency_Invalid(t *testing.T) {
	for _, s := range []string{"", "brl", "XXX"} {
		_, err := ParseCurrency(s)
		assert.ErrorIs(t, err, ErrInvalidCurrency)
	}
}
