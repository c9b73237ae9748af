package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

func TestCSV(t *testing.T) {
	transactions := []models.Transaction{
		{
			Type:        models.TypeExpense,
			Amount:      450,
			Category:    "Food & Dining",
			Description: "Espresso, Croissant",
			Date:        time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Type:        models.TypeIncome,
			Amount:      50000,
			Category:    "Salary",
			Description: "March salary",
			Date:        time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	data, err := CSV(transactions)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "Date,Type,Category,Description,Amount" {
		t.Errorf("header = %q", lines[0])
	}
	// description contains a comma, so it must be quoted
	if lines[1] != `3/5/2025,expense,Food & Dining,"Espresso, Croissant",450` {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "3/1/2025,income,Salary,March salary,50000" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestCSVEmpty(t *testing.T) {
	data, err := CSV(nil)
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	if strings.TrimRight(string(data), "\n") != "Date,Type,Category,Description,Amount" {
		t.Errorf("empty export = %q, want header only", string(data))
	}
}
