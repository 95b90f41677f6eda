// Package money formats New Taiwan dollar amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.TraditionalChinese)

// NTD formats an amount with thousands separators, e.g. NT$12,345
func NTD(amount int) string {
	return printer.Sprintf("NT$%d", amount)
}

// Number formats a plain integer with thousands separators
func Number(n int) string {
	return printer.Sprintf("%d", n)
}
