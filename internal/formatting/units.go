package formatting

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when no currency locale is configured
const DefaultLocale = "en-US"

// Units formats currency, hours and durations with one fixed locale
type Units struct {
	printer *message.Printer
}

// NewUnits creates a formatter for the locale, falling back to en-US when the tag is invalid
func NewUnits(locale string) *Units {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.AmericanEnglish
	}
	return &Units{printer: message.NewPrinter(tag)}
}

// FormatCurrency renders a dollar amount with two decimals, e.g. "$1,234.50"
func (u *Units) FormatCurrency(amount float64) string {
	return u.printer.Sprintf("$%.2f", amount)
}

// FormatHours renders fractional hours with two decimals
func (u *Units) FormatHours(hours float64) string {
	return u.printer.Sprintf("%.2f hours", hours)
}

// FormatMinutes renders a duration in minutes as "1 hr 30 min"
func (u *Units) FormatMinutes(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%d hr", minutes/60)
	default:
		return fmt.Sprintf("%d hr %d min", minutes/60, minutes%60)
	}
}

// FormatDegrees renders an angle measurement
func FormatDegrees(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d°", int(v))
	}
	return fmt.Sprintf("%.1f°", v)
}
