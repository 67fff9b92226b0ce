package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: ""},
		{name: "single digit", amount: 7, want: "Seven"},
		{name: "teens", amount: 14, want: "Fourteen"},
		{name: "tens", amount: 90, want: "Ninety"},
		{name: "tens and units", amount: 42, want: "Forty two"},
		{name: "one hundred", amount: 100, want: "One hundred"},
		{name: "hundred with tail", amount: 105, want: "One hundred and five"},
		{name: "one thousand", amount: 1000, want: "One thousand"},
		{name: "one lakh", amount: 100000, want: "One lakh"},
		{name: "one crore", amount: 10000000, want: "One crore"},
		{name: "full grouping", amount: 123456789, want: "Twelve crore thirty four lakh fifty six thousand seven hundred and eighty nine"},
		{name: "lakh and tail", amount: 250075, want: "Two lakh fifty thousand and seventy five"},
		{name: "max nine digits", amount: 999999999, want: "Ninety nine crore ninety nine lakh ninety nine thousand nine hundred and ninety nine"},
		{name: "ten digits overflow", amount: 1234567890, want: "overflow"},
		{name: "negative degrades to empty", amount: -5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount))
		})
	}
}
