package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for empty optional values
const Placeholder = "—"

var printer *message.Printer

func init() {
	if err := setRecordsMessage(language.Russian); err != nil {
		panic(fmt.Sprintf("registering plural messages: %v", err))
	}
	printer = message.NewPrinter(language.Russian)
}

// setRecordsMessage registers the plural forms used by FormatRecordsReturned
func setRecordsMessage(tag language.Tag) error {
	return message.Set(tag, "%d records",
		plural.Selectf(1, "%d",
			plural.One, "%d запись",
			plural.Few, "%d записи",
			plural.Many, "%d записей",
			plural.Other, "%d записи",
		))
}

// FormatInt groups thousands the Russian way
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders an amount with two decimals and a rouble sign, e.g. 12 345,50 ₽
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + intPart + "," + frac + " ₽"
	}
	return sign + printer.Sprintf("%d", n) + "," + frac + " ₽"
}

func FormatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return Placeholder
	}
	return FormatMoney(d.Decimal)
}

// FormatHours renders a workshop time, keeping at most two decimals
func FormatHours(h *float64) string {
	if h == nil {
		return Placeholder
	}
	s := strconv.FormatFloat(*h, 'f', -1, 64)
	if d, err := decimal.NewFromString(s); err == nil {
		s = d.Round(2).String()
	}
	return strings.Replace(s, ".", ",", 1) + " ч"
}

// FormatDate converts a YYYY-MM-DD date to DD.MM.YYYY
func FormatDate(date *string) string {
	if date == nil || *date == "" {
		return Placeholder
	}
	t, err := time.Parse(time.DateOnly, *date)
	if err != nil {
		return *date
	}
	return t.Format("02.01.2006")
}

func FormatBool(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}

func FormatOptional(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

func FormatOptionalInt(n *int) string {
	if n == nil {
		return Placeholder
	}
	return FormatInt(*n)
}

// FormatRecordsReturned is the row count shown under a list, e.g. "3 записи"
func FormatRecordsReturned(count int) string {
	return printer.Sprintf("%d records", count)
}
