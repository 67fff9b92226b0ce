package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// AmountInWords converts a non-negative integer rupee amount into Indian
// numbering-system words (crore/lakh/thousand/hundred) for printed receipts.
// Amounts beyond 9 digits return the literal "overflow"; zero and decomposition
// failures return the empty string. The grouping is 2,2,2,1,2 digits, taken
// from the zero-padded amount with a fixed regular expression so the output
// byte-matches the receipts already in circulation.
func AmountInWords(amount int64) string {
	if amount < 0 {
		return ""
	}
	if len(strconv.FormatInt(amount, 10)) > 9 {
		return "overflow"
	}

	groups := amountGroups.FindStringSubmatch(fmt.Sprintf("%09d", amount))
	if groups == nil {
		return ""
	}

	var b strings.Builder
	writeGroup(&b, groups[1], "crore")
	writeGroup(&b, groups[2], "lakh")
	writeGroup(&b, groups[3], "thousand")
	writeGroup(&b, groups[4], "hundred")

	if tail := twoDigitWords(groups[5]); tail != "" {
		if b.Len() > 0 {
			b.WriteString("and ")
		}
		b.WriteString(tail)
		b.WriteString(" ")
	}

	return capitalize(strings.TrimSpace(b.String()))
}

var amountGroups = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})(\d)(\d{2})$`)

var onesWords = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

func writeGroup(b *strings.Builder, digits, unit string) {
	words := twoDigitWords(digits)
	if words == "" {
		return
	}
	b.WriteString(words)
	b.WriteString(" ")
	b.WriteString(unit)
	b.WriteString(" ")
}

// twoDigitWords spells a one- or two-digit group, empty for zero.
func twoDigitWords(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return ""
	}
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
