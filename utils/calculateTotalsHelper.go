package utils

import (
	"github.com/shopspring/decimal"
)

var decimalOneHundred = decimal.NewFromInt(100)

// TaxTreatment tags how a charge total relates to its tax: an Exclusive
// amount has tax added on top, an Inclusive amount already contains it.
type TaxTreatment string

const (
	TaxTreatmentExclusive TaxTreatment = "Exclusive"
	TaxTreatmentInclusive TaxTreatment = "Inclusive"
)

// ExclusiveTaxAmount computes tax on top of a pre-tax amount:
// (amount / 100) * rate
func ExclusiveTaxAmount(amount decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	return amount.DivRound(decimalOneHundred, 4).Mul(taxRate)
}

// InclusiveTaxAmount recovers the tax portion already contained in amount:
// (amount / (100 + rate)) * rate
// The displayed total stays unchanged; only the split moves.
func InclusiveTaxAmount(amount decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	return amount.DivRound(taxRate.Add(decimalOneHundred), 4).Mul(taxRate)
}

// CalculateTaxAmount dispatches on the treatment tag.
func CalculateTaxAmount(treatment TaxTreatment, amount decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	if taxRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if treatment == TaxTreatmentInclusive {
		return InclusiveTaxAmount(amount, taxRate)
	}
	return ExclusiveTaxAmount(amount, taxRate)
}

// LineAmounts carries the computed per-line figures of an invoice line.
type LineAmounts struct {
	TaxableValue decimal.Decimal
	TaxAmount    decimal.Decimal
	Amount       decimal.Decimal
}

// CalculateLineAmounts computes taxable value, tax and gross amount for one
// line. taxableOverride replaces qty*rate when the client supplies an explicit
// taxable value (lumpsum charges).
func CalculateLineAmounts(qty decimal.Decimal, rate decimal.Decimal, taxRate decimal.Decimal, taxableOverride *decimal.Decimal) LineAmounts {
	taxableValue := qty.Mul(rate)
	if taxableOverride != nil {
		taxableValue = *taxableOverride
	}

	var taxAmount decimal.Decimal
	if taxRate.GreaterThan(decimal.Zero) {
		taxAmount = ExclusiveTaxAmount(taxableValue, taxRate)
	}

	return LineAmounts{
		TaxableValue: taxableValue,
		TaxAmount:    taxAmount,
		Amount:       taxableValue.Add(taxAmount),
	}
}

// LineTaxFromAmount derives the tax when only a combined amount is given:
// amount - taxableValue, clamped to >= 0.
func LineTaxFromAmount(taxableValue decimal.Decimal, amount decimal.Decimal) decimal.Decimal {
	taxAmount := amount.Sub(taxableValue)
	if taxAmount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return taxAmount
}

// InvoiceTotals is the computed financial summary of an invoice.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	TotalTax   decimal.Decimal
	GrossTotal decimal.Decimal
	TdsAmount  decimal.Decimal
	NetPayable decimal.Decimal
}

// CalculateInvoiceTotals sums line amounts and applies the TDS withholding
// percentage on the taxable subtotal. Zero lines produce all-zero totals.
func CalculateInvoiceTotals(lines []LineAmounts, tdsRate decimal.Decimal) InvoiceTotals {
	var subtotal, totalTax decimal.Decimal
	for _, line := range lines {
		subtotal = subtotal.Add(line.TaxableValue)
		totalTax = totalTax.Add(line.TaxAmount)
	}

	grossTotal := subtotal.Add(totalTax)

	var tdsAmount decimal.Decimal
	if tdsRate.GreaterThan(decimal.Zero) {
		tdsAmount = subtotal.Mul(tdsRate).DivRound(decimalOneHundred, 4)
	}

	return InvoiceTotals{
		Subtotal:   subtotal,
		TotalTax:   totalTax,
		GrossTotal: grossTotal,
		TdsAmount:  tdsAmount,
		NetPayable: grossTotal.Sub(tdsAmount),
	}
}
