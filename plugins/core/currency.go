package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/sdr4n/toolshed/log"
	toolspkg "github.com/sdr4n/toolshed/tools"
)

// GetCurrencyForCountry returns the currency code for a given country code
// (ISO 3166-1 alpha-2). Defaults to "USD" if the country is not found or empty.
func GetCurrencyForCountry(countryCode string) string {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return "USD"
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return "USD"
	}

	cur, ok := currency.FromRegion(region)
	if !ok {
		return "USD"
	}

	return cur.String()
}

// CurrencyInput defines the input for the currency tool
type CurrencyInput struct {
	CountryCode string `json:"country_code" description:"ISO 3166-1 alpha-2 country code (e.g., 'US', 'DE')"`
}

// CurrencyOutput is the resolved currency code
type CurrencyOutput struct {
	CountryCode string `json:"country_code"`
	Currency    string `json:"currency"`
}

// CurrencyTool resolves the currency used in a country
type CurrencyTool struct{}

// NewCurrencyTool creates a new CurrencyTool and registers it
func NewCurrencyTool(gk *genkit.Genkit, registry *toolspkg.Registry) *CurrencyTool {
	t := &CurrencyTool{}

	if gk == nil || registry == nil {
		return t
	}

	err := registry.Register(genkit.DefineTool[*CurrencyInput, *CurrencyOutput](
		gk,
		"currency_for_country",
		"Returns the ISO 4217 currency code for a country given its ISO 3166-1 alpha-2 code. Defaults to USD for unknown countries.",
		func(ctx *ai.ToolContext, input *CurrencyInput) (*CurrencyOutput, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		b, _ := json.Marshal(args)
		var input CurrencyInput
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("failed to parse arguments: %w", err)
		}
		return t.Execute(ctx, &input)
	})
	if err != nil {
		log.Warnf(context.Background(), "[Core] %v", err)
	}

	return t
}

func (t *CurrencyTool) Execute(ctx context.Context, input *CurrencyInput) (*CurrencyOutput, error) {
	if input == nil || strings.TrimSpace(input.CountryCode) == "" {
		return nil, fmt.Errorf("country_code is required")
	}

	code := strings.ToUpper(strings.TrimSpace(input.CountryCode))
	cur := GetCurrencyForCountry(code)

	log.Debugf(ctx, "CurrencyTool resolved %s -> %s", code, cur)
	return &CurrencyOutput{
		CountryCode: code,
		Currency:    cur,
	}, nil
}
