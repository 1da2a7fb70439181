package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCurrencyForCountry(t *testing.T) {
	assert.Equal(t, "USD", GetCurrencyForCountry("US"))
	assert.Equal(t, "EUR", GetCurrencyForCountry("DE"))
	assert.Equal(t, "GBP", GetCurrencyForCountry("GB"))
	assert.Equal(t, "JPY", GetCurrencyForCountry("jp"))

	// Unknown or empty countries fall back to USD
	assert.Equal(t, "USD", GetCurrencyForCountry(""))
	assert.Equal(t, "USD", GetCurrencyForCountry("ZZ"))
	assert.Equal(t, "USD", GetCurrencyForCountry("not-a-code"))
}

func TestCurrencyTool_Execute(t *testing.T) {
	tool := &CurrencyTool{}

	out, err := tool.Execute(context.Background(), &CurrencyInput{CountryCode: "de"})
	assert.NoError(t, err)
	assert.Equal(t, "DE", out.CountryCode)
	assert.Equal(t, "EUR", out.Currency)
}

func TestCurrencyTool_MissingCountryCode(t *testing.T) {
	tool := &CurrencyTool{}

	_, err := tool.Execute(context.Background(), &CurrencyInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "country_code is required")
}
