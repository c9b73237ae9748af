package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/core/docintel"
)

func docWithFields(fields map[string]docintel.DocumentField) *docintel.ReceiptDocument {
	return &docintel.ReceiptDocument{Fields: fields}
}

func TestExtractMerchantPrefersName(t *testing.T) {
	doc := docWithFields(map[string]docintel.DocumentField{
		"MerchantName":    {Content: "Cafe Mocha", Confidence: 0.97},
		"MerchantAddress": {Content: "12 MG Road\nBengaluru"},
	})

	got := Extract(doc)
	if got.Merchant == nil || *got.Merchant != "Cafe Mocha" {
		t.Fatalf("merchant = %v, want Cafe Mocha", got.Merchant)
	}
	if got.Confidence.Merchant != 0.97 {
		t.Errorf("merchant confidence = %v, want 0.97", got.Confidence.Merchant)
	}
}

func TestExtractMerchantAddressFallback(t *testing.T) {
	doc := docWithFields(map[string]docintel.DocumentField{
		"MerchantAddress": {Content: "12 MG Road\nBengaluru 560001"},
	})

	got := Extract(doc)
	if got.Merchant == nil || *got.Merchant != "12 MG Road" {
		t.Fatalf("merchant = %v, want first address line", got.Merchant)
	}
}

func TestExtractMerchantAbsent(t *testing.T) {
	got := Extract(docWithFields(map[string]docintel.DocumentField{}))
	if got.Merchant != nil {
		t.Fatalf("merchant = %q, want nil", *got.Merchant)
	}
	if got.Confidence.Merchant != 0 || got.Confidence.Total != 0 || got.Confidence.Date != 0 {
		t.Errorf("confidence = %+v, want all zeros", got.Confidence)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int64 // 0 means absent
	}{
		{"plain", "45.60", 46},
		{"currency symbol", "$45.60", 46},
		{"rupee symbol and commas", "₹1,234.40", 1234},
		{"rounds half up", "19.5", 20},
		{"zero", "0.00", 0},
		{"negative", "-12.00", 0},
		{"dash placeholder", "—", 0},
		{"empty", "", 0},
		{"letters only", "total", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithFields(map[string]docintel.DocumentField{
				"Total": {Content: tt.content},
			})
			got := Extract(doc)
			if tt.want == 0 {
				if got.Total != nil {
					t.Fatalf("total = %d, want nil", *got.Total)
				}
				return
			}
			if got.Total == nil || *got.Total != tt.want {
				t.Fatalf("total = %v, want %d", got.Total, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // "" means absent, else yyyy-mm-dd
	}{
		{"iso", "2025-03-14", "2025-03-14"},
		{"slash us", "03/14/2025", "2025-03-14"},
		{"long form", "March 14, 2025", "2025-03-14"},
		{"garbage", "next tuesday", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWithFields(map[string]docintel.DocumentField{
				"TransactionDate": {Content: tt.content},
			})
			got := Extract(doc)
			if tt.want == "" {
				if got.TransactionDate != nil {
					t.Fatalf("date = %v, want nil", got.TransactionDate)
				}
				return
			}
			if got.TransactionDate == nil {
				t.Fatal("date = nil, want parsed")
			}
			if got.TransactionDate.Format("2006-01-02") != tt.want {
				t.Fatalf("date = %s, want %s", got.TransactionDate.Format(time.RFC3339), tt.want)
			}
		})
	}
}

func TestExtractItemsFiltersFallbackNames(t *testing.T) {
	doc := docWithFields(map[string]docintel.DocumentField{
		"Items": {ValueArray: []docintel.DocumentField{
			{ValueObject: map[string]docintel.DocumentField{
				"Description": {Content: "Masala Dosa"},
				"Price":       {Content: "₹80.00"},
			}},
			{ValueObject: map[string]docintel.DocumentField{
				"Name": {Content: "Filter Coffee"},
			}},
			// no readable name: dropped
			{ValueObject: map[string]docintel.DocumentField{
				"Price": {Content: "45.00"},
			}},
			// whitespace-only name: dropped
			{ValueObject: map[string]docintel.DocumentField{
				"Description": {Content: "   "},
			}},
		}},
	})

	got := Extract(doc)
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].Name != "Masala Dosa" {
		t.Errorf("items[0].Name = %q", got.Items[0].Name)
	}
	if got.Items[0].Price == nil || *got.Items[0].Price != 80 {
		t.Errorf("items[0].Price = %v, want 80", got.Items[0].Price)
	}
	if got.Items[1].Name != "Filter Coffee" {
		t.Errorf("items[1].Name = %q", got.Items[1].Name)
	}
	if got.Items[1].Price != nil {
		t.Errorf("items[1].Price = %v, want nil", *got.Items[1].Price)
	}
}

func TestDescriptionJoinsItems(t *testing.T) {
	doc := docWithFields(map[string]docintel.DocumentField{
		"MerchantName": {Content: "Cafe Mocha"},
		"Items": {ValueArray: []docintel.DocumentField{
			{ValueObject: map[string]docintel.DocumentField{"Description": {Content: "Espresso"}}},
			{ValueObject: map[string]docintel.DocumentField{"Description": {Content: "Croissant"}}},
		}},
	})

	got := Extract(doc)
	if got.Description != "Espresso, Croissant" {
		t.Fatalf("description = %q", got.Description)
	}
}

func TestDescriptionMerchantFallback(t *testing.T) {
	doc := docWithFields(map[string]docintel.DocumentField{
		"MerchantName": {Content: "Cafe Mocha"},
	})

	got := Extract(doc)
	if got.Description != "Purchase from Cafe Mocha" {
		t.Fatalf("description = %q", got.Description)
	}
}

func TestDescriptionEmptyWhenNothingKnown(t *testing.T) {
	got := Extract(docWithFields(map[string]docintel.DocumentField{}))
	if got.Description != "" {
		t.Fatalf("description = %q, want empty", got.Description)
	}
}

func TestDescriptionTruncatedAt200(t *testing.T) {
	long := strings.Repeat("x", 300)
	doc := docWithFields(map[string]docintel.DocumentField{
		"Items": {ValueArray: []docintel.DocumentField{
			{ValueObject: map[string]docintel.DocumentField{"Description": {Content: long}}},
		}},
	})

	got := Extract(doc)
	if len([]rune(got.Description)) != 200 {
		t.Fatalf("description length = %d, want 200", len([]rune(got.Description)))
	}
}

func TestExtractAlwaysExpense(t *testing.T) {
	got := Extract(docWithFields(map[string]docintel.DocumentField{
		"MerchantName": {Content: "Salary Office"},
	}))
	if got.Type != "expense" {
		t.Fatalf("type = %q, want expense", got.Type)
	}
}
