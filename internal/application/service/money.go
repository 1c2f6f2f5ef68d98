package service

import "math"

// toCents converts a decimal currency amount to cents.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// lineAmount computes price × quantity in cents. Quantity is fractional
// for weight-sold goods, so the product is rounded to the nearest cent.
func lineAmount(priceCents int64, quantity float64) int64 {
	return int64(math.Round(float64(priceCents) * quantity))
}
