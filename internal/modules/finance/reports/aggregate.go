// Package reports computes aggregate views over a user's transactions.
// Everything here is a pure function of its input: same transactions in,
// byte-identical output out. Wall-clock time never enters; only the
// transactions' own dates matter.
package reports

import (
	"sort"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

// Summary holds the headline stats for a set of transactions
type Summary struct {
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpenses int64 `json:"totalExpenses"`
	Balance       int64 `json:"balance"`
	Count         int   `json:"count"`
}

// Summarize computes total income, total expenses, net balance and count
func Summarize(transactions []models.Transaction) Summary {
	var summary Summary
	for _, t := range transactions {
		if t.Type == models.TypeIncome {
			summary.TotalIncome += t.Amount
		} else {
			summary.TotalExpenses += t.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	summary.Count = len(transactions)
	return summary
}

// CategoryTotal is one category's share of expense spending
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Count    int    `json:"count"`
}

// ExpensesByCategory groups expense transactions by category and sorts the
// result by summed amount descending. Ties break on category name so the
// order is stable across calls.
func ExpensesByCategory(transactions []models.Transaction) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	for _, t := range transactions {
		if t.Type != models.TypeExpense {
			continue
		}
		entry, ok := totals[t.Category]
		if !ok {
			entry = &CategoryTotal{Category: t.Category}
			totals[t.Category] = entry
		}
		entry.Amount += t.Amount
		entry.Count++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, entry := range totals {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// MonthBucket is one calendar month's income and expense totals
type MonthBucket struct {
	Month    string `json:"month"` // display label, e.g. "Jan 2025"
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
}

// MonthlySeries groups transactions by calendar year+month and returns the
// buckets in chronological order.
func MonthlySeries(transactions []models.Transaction) []MonthBucket {
	type keyed struct {
		key    int
		bucket MonthBucket
	}
	buckets := make(map[int]*MonthBucket)
	for _, t := range transactions {
		key := t.Date.Year()*12 + int(t.Date.Month()) - 1
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthBucket{
				Month: time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			}
			buckets[key] = bucket
		}
		if t.Type == models.TypeIncome {
			bucket.Income += t.Amount
		} else {
			bucket.Expenses += t.Amount
		}
	}

	ordered := make([]keyed, 0, len(buckets))
	for key, bucket := range buckets {
		ordered = append(ordered, keyed{key: key, bucket: *bucket})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	result := make([]MonthBucket, len(ordered))
	for i, entry := range ordered {
		result[i] = entry.bucket
	}
	return result
}

// DayBucket is one calendar day's totals plus the running balance carried
// forward within the report window
type DayBucket struct {
	Day            string    `json:"day"` // display label, e.g. "Jan 2"
	Date           time.Time `json:"date"`
	Income         int64     `json:"income"`
	Expenses       int64     `json:"expenses"`
	Balance        int64     `json:"balance"`
	RunningBalance int64     `json:"runningBalance"`
}

// DailySeries builds one bucket per calendar day of the given month, even
// for days with no transactions, and computes per-day balance and a running
// balance that starts from zero at the beginning of the month. Transactions
// outside the month are ignored.
func DailySeries(transactions []models.Transaction, year int, month time.Month) []DayBucket {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	buckets := make([]DayBucket, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		buckets[day-1] = DayBucket{
			Day:  date.Format("Jan 2"),
			Date: date,
		}
	}

	for _, t := range transactions {
		if t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		bucket := &buckets[t.Date.Day()-1]
		if t.Type == models.TypeIncome {
			bucket.Income += t.Amount
		} else {
			bucket.Expenses += t.Amount
		}
	}

	var runningBalance int64
	for i := range buckets {
		buckets[i].Balance = buckets[i].Income - buckets[i].Expenses
		runningBalance += buckets[i].Balance
		buckets[i].RunningBalance = runningBalance
	}
	return buckets
}

// FilterMonth returns the transactions dated within the given calendar
// month, preserving input order.
func FilterMonth(transactions []models.Transaction, year int, month time.Month) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.Year() == year && t.Date.Month() == month {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
