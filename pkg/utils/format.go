package utils

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/unicode/norm"
)

var (
	nonDigit        = regexp.MustCompile("[^0-9]")
	currencyPrinter = message.NewPrinter(language.Vietnamese)
)

// FormatCurrency renders an amount with vi-VN digit grouping, e.g. "1.290.000".
// Fractions are kept up to three digits and dropped when zero.
func FormatCurrency(amount float64) string {
	if amount == math.Trunc(amount) && math.Abs(amount) < 1e15 {
		return currencyPrinter.Sprintf("%d", int64(amount))
	}
	return currencyPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// FormatPercent renders a discount column cell; zero discounts print as empty.
func FormatPercent(discount float64) string {
	if discount <= 0 {
		return ""
	}
	return currencyPrinter.Sprint(number.Decimal(discount, number.MaxFractionDigits(2))) + "%"
}

// DigitsOnly strips everything except ASCII digits.
func DigitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// MaskPhone hides the middle of a phone number: "0984538228" -> "098***228".
// Numbers with fewer than seven digits are returned unchanged.
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := DigitsOnly(phone)
	if len(digits) < 7 {
		return phone
	}
	return digits[:3] + "***" + digits[len(digits)-3:]
}

// ASCIIFold removes Vietnamese diacritics for devices without a Unicode code page.
func ASCIIFold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			r = 'd'
		case 'Đ':
			r = 'D'
		}
		b.WriteRune(r)
	}
	return b.String()
}
