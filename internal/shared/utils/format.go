package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatINR renders a whole-rupee amount as a localized currency string,
// e.g. 1234567 -> "₹12,34,567.00". Indian grouping puts the first separator
// after three digits and subsequent separators every two digits.
func FormatINR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	grouped := groupIndian(digits)

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + "₹" + grouped + ".00"
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatDate renders a date for display, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateInput renders a date as an ISO calendar day, e.g. "2006-01-02".
func FormatDateInput(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthName returns the full English month name for a 0-based month index.
// Out-of-range indexes return an empty string.
func MonthName(index int) string {
	if index < 0 || index > 11 {
		return ""
	}
	return time.Month(index + 1).String()
}
