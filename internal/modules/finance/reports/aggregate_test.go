package reports

import (
	"testing"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

func tx(txType string, amount int64, category string, date time.Time) models.Transaction {
	return models.Transaction{
		Type:     txType,
		Amount:   amount,
		Currency: models.CurrencyINR,
		Category: category,
		Date:     date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeIncome, 50000, "Salary", day(2025, time.March, 1)),
		tx(models.TypeExpense, 1200, "Groceries", day(2025, time.March, 3)),
		tx(models.TypeExpense, 800, "Food & Dining", day(2025, time.March, 5)),
	}

	got := Summarize(transactions)
	if got.TotalIncome != 50000 {
		t.Errorf("TotalIncome = %d, want 50000", got.TotalIncome)
	}
	if got.TotalExpenses != 2000 {
		t.Errorf("TotalExpenses = %d, want 2000", got.TotalExpenses)
	}
	if got.Balance != 48000 {
		t.Errorf("Balance = %d, want 48000", got.Balance)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.TotalIncome != 0 || got.TotalExpenses != 0 || got.Balance != 0 || got.Count != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero value", got)
	}
}

func TestExpensesByCategorySortsDescending(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeExpense, 200, "Transportation", day(2025, time.March, 2)),
		tx(models.TypeExpense, 300, "Groceries", day(2025, time.March, 3)),
		tx(models.TypeExpense, 50, "Entertainment", day(2025, time.March, 4)),
		tx(models.TypeExpense, 200, "Groceries", day(2025, time.March, 5)),
		tx(models.TypeIncome, 50000, "Salary", day(2025, time.March, 1)), // ignored
	}

	got := ExpensesByCategory(transactions)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := []CategoryTotal{
		{Category: "Groceries", Amount: 500, Count: 2},
		{Category: "Transportation", Amount: 200, Count: 1},
		{Category: "Entertainment", Amount: 50, Count: 1},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExpensesByCategoryTieBreaksOnName(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeExpense, 100, "Utilities", day(2025, time.March, 1)),
		tx(models.TypeExpense, 100, "Groceries", day(2025, time.March, 2)),
	}

	got := ExpensesByCategory(transactions)
	if got[0].Category != "Groceries" || got[1].Category != "Utilities" {
		t.Errorf("tie order = [%s %s], want [Groceries Utilities]", got[0].Category, got[1].Category)
	}
}

func TestMonthlySeriesChronological(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeExpense, 500, "Groceries", day(2025, time.February, 10)),
		tx(models.TypeIncome, 50000, "Salary", day(2024, time.December, 1)),
		tx(models.TypeIncome, 50000, "Salary", day(2025, time.February, 1)),
		tx(models.TypeExpense, 300, "Groceries", day(2024, time.December, 15)),
	}

	got := MonthlySeries(transactions)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Month != "Dec 2024" {
		t.Errorf("got[0].Month = %q, want Dec 2024", got[0].Month)
	}
	if got[0].Income != 50000 || got[0].Expenses != 300 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Month != "Feb 2025" {
		t.Errorf("got[1].Month = %q, want Feb 2025", got[1].Month)
	}
	if got[1].Income != 50000 || got[1].Expenses != 500 {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestDailySeriesRunningBalance(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeIncome, 1000, "Salary", day(2025, time.April, 1)),
		tx(models.TypeExpense, 200, "Groceries", day(2025, time.April, 1)),
		tx(models.TypeExpense, 300, "Food & Dining", day(2025, time.April, 2)),
		tx(models.TypeExpense, 999, "Shopping", day(2025, time.March, 31)), // outside window
	}

	got := DailySeries(transactions, 2025, time.April)
	if len(got) != 30 {
		t.Fatalf("len = %d, want 30 buckets for April", len(got))
	}

	if got[0].Income != 1000 || got[0].Expenses != 200 {
		t.Errorf("day 1 = %+v", got[0])
	}
	if got[0].Balance != 800 || got[0].RunningBalance != 800 {
		t.Errorf("day 1 balance = %d running = %d, want 800/800", got[0].Balance, got[0].RunningBalance)
	}
	if got[1].Balance != -300 || got[1].RunningBalance != 500 {
		t.Errorf("day 2 balance = %d running = %d, want -300/500", got[1].Balance, got[1].RunningBalance)
	}
	// an empty day carries the running balance forward
	if got[2].Income != 0 || got[2].Expenses != 0 || got[2].RunningBalance != 500 {
		t.Errorf("day 3 = %+v, want empty with running 500", got[2])
	}
	if got[0].Day != "Apr 1" {
		t.Errorf("day label = %q, want Apr 1", got[0].Day)
	}
}

func TestDailySeriesLeapFebruary(t *testing.T) {
	got := DailySeries(nil, 2024, time.February)
	if len(got) != 29 {
		t.Fatalf("len = %d, want 29 buckets for Feb 2024", len(got))
	}
}

func TestFilterMonth(t *testing.T) {
	transactions := []models.Transaction{
		tx(models.TypeExpense, 100, "Groceries", day(2025, time.March, 31)),
		tx(models.TypeExpense, 200, "Groceries", day(2025, time.April, 1)),
		tx(models.TypeExpense, 300, "Groceries", day(2024, time.April, 1)),
	}

	got := FilterMonth(transactions, 2025, time.April)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Amount != 200 {
		t.Errorf("kept amount = %d, want 200", got[0].Amount)
	}
}
