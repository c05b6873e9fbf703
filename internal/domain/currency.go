package domain

import "github.com/shopspring/decimal"

// BaseCurrency is the currency all forecast values are expressed in.
const BaseCurrency = "EUR"

// ConversionRates maps a currency code to its static rate into EUR. The
// table is fixed at build time; live rates are out of scope.
var ConversionRates = map[string]decimal.Decimal{
	"EUR": decimal.NewFromInt(1),
	"USD": decimal.NewFromFloat(0.92),
	"GBP": decimal.NewFromFloat(1.17),
	"CHF": decimal.NewFromFloat(1.05),
	"SEK": decimal.NewFromFloat(0.088),
	"NOK": decimal.NewFromFloat(0.087),
	"DKK": decimal.NewFromFloat(0.134),
	"PLN": decimal.NewFromFloat(0.23),
	"CZK": decimal.NewFromFloat(0.04),
	"JPY": decimal.NewFromFloat(0.0062),
}

// Convert converts an amount between two currencies via their EUR rates.
// Unknown currencies are treated as already being in the target currency,
// matching the graceful-degradation stance of the calculation engines.
func Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	fromRate, ok := ConversionRates[from]
	if !ok {
		return amount
	}
	toRate, ok := ConversionRates[to]
	if !ok {
		return amount
	}
	return amount.Mul(fromRate).Div(toRate)
}

// ConvertToBase converts an amount into the base currency.
func ConvertToBase(amount decimal.Decimal, from string) decimal.Decimal {
	return Convert(amount, from, BaseCurrency)
}
