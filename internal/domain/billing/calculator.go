// Package billing holds the pure tuition rules: line amounts, the refund
// convention, totals, per-type defaults and required-field validation.
package billing

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/anviet/tuition-api/internal/domain/entity"
)

// refundMarker is "hoàn" in NFC form. A line whose description contains it is
// subtracted from the total. Stored receipts rely on this free-text match.
const refundMarker = "hoàn"

// LineAmount returns quantity * rate * (1 - discountPercent/100).
// No rounding and no clamping: negative or >100 discounts are computed as given.
func LineAmount(quantity, rate, discountPercent float64) float64 {
	base := quantity * rate
	return base - base*(discountPercent/100)
}

// IsRefundLine reports whether a line description marks a refund.
// The match is case-insensitive and may occur anywhere in the text.
func IsRefundLine(description string) bool {
	return strings.Contains(strings.ToLower(norm.NFC.String(description)), refundMarker)
}

// SignedAmount is the line amount, negated for refund lines.
func SignedAmount(item entity.TuitionLineItem) float64 {
	amount := LineAmount(item.Quantity, item.Rate, item.Discount)
	if IsRefundLine(item.Content) {
		return -amount
	}
	return amount
}

// GrandTotal folds the signed line amounts in item order, starting at zero.
func GrandTotal(items []entity.TuitionLineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += SignedAmount(item)
	}
	return total
}
