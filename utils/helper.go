package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	decimalZero       = decimal.NewFromInt(0)
	decimalOneHundred = decimal.NewFromInt(100)
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func DereferencePtr[T any](ptr *T, def T) T {
	if ptr == nil {
		return def
	}
	return *ptr
}

func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// RoundMoney rounds to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PercentOf returns amount * pct / 100 at 4dp intermediate precision.
func PercentOf(amount decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	if pct.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return amount.Mul(pct).DivRound(decimalOneHundred, 4)
}

// WasteAdjust returns qty * (1 + waste%/100).
func WasteAdjust(qty decimal.Decimal, wastePct decimal.Decimal) decimal.Decimal {
	if wastePct.LessThanOrEqual(decimalZero) {
		return qty
	}
	return qty.Add(qty.Mul(wastePct).DivRound(decimalOneHundred, 4))
}

// CeilQuantity computes ceil(sqft / baseRate * multiplier) as a whole-unit count.
func CeilQuantity(sqft decimal.Decimal, baseRate decimal.Decimal, multiplier decimal.Decimal) int {
	if baseRate.LessThanOrEqual(decimalZero) || sqft.LessThanOrEqual(decimalZero) {
		return 0
	}
	q := sqft.DivRound(baseRate, 6).Mul(multiplier)
	return int(q.Ceil().IntPart())
}

// SumDecimals folds a slice through an amount accessor.
func SumDecimals[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimalZero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorResponse["error"] = err.Error()
		return errorResponse
	}
	for _, fieldErr := range validationErrors {
		errorResponse[strings.ToLower(fieldErr.Field())] = "failed on " + fieldErr.Tag()
	}
	return errorResponse
}
