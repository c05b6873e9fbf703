package domain

import "github.com/shopspring/decimal"

// ForecastPoint is one day of the projected liquid balance. Points are
// computed per request and never persisted.
type ForecastPoint struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type ForecastResponse struct {
	BaseCurrency string           `json:"base_currency"`
	Points       []*ForecastPoint `json:"points"`
}
