// Package receipt turns a raw document-analysis result into the normalized
// extraction the client uses to pre-fill a transaction draft, and assigns a
// spending category from the merchant and line items.
package receipt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/core/docintel"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

// Extraction is the ephemeral result of one receipt analysis. It is never
// persisted; the client confirms it into a transaction or discards it.
type Extraction struct {
	Merchant        *string                  `json:"merchant"`
	TransactionDate *time.Time               `json:"transactionDate"`
	Total           *int64                   `json:"total"`
	Items           []models.ReceiptItem     `json:"items"`
	Description     string                   `json:"description"`
	Category        string                   `json:"category"`
	Type            string                   `json:"type"`
	Confidence      models.ReceiptConfidence `json:"confidence"`
}

const maxDescriptionLen = 200

// itemNameFallback marks an item whose name the analyzer could not read.
// Such items are dropped; an item must have a real name to be kept.
const itemNameFallback = "Item"

var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// Layouts tried against the analyzer's date text, most common first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// Extract normalizes one analyzed receipt document into an Extraction.
// Receipts are always treated as expenses.
func Extract(doc *docintel.ReceiptDocument) *Extraction {
	fields := doc.Fields

	merchant := extractMerchant(fields)
	transactionDate := parseDate(fields["TransactionDate"].Content)
	total := parseAmount(fields["Total"].Content)
	items := extractItems(fields["Items"])

	extraction := &Extraction{
		Merchant:        merchant,
		TransactionDate: transactionDate,
		Total:           total,
		Items:           items,
		Description:     buildDescription(merchant, items),
		Type:            models.TypeExpense,
		Confidence: models.ReceiptConfidence{
			Merchant: fields["MerchantName"].Confidence,
			Total:    fields["Total"].Confidence,
			Date:     fields["TransactionDate"].Confidence,
		},
	}
	extraction.Category = Categorize(merchant, items)

	return extraction
}

// extractMerchant prefers the explicit merchant-name field and falls back
// to the first line of the merchant address.
func extractMerchant(fields map[string]docintel.DocumentField) *string {
	if name := fields["MerchantName"].Content; name != "" {
		return &name
	}
	if address := fields["MerchantAddress"].Content; address != "" {
		firstLine := strings.SplitN(address, "\n", 2)[0]
		if firstLine != "" {
			return &firstLine
		}
	}
	return nil
}

// parseDate parses the analyzer's date text. An unparseable date is
// treated as absent, never propagated.
func parseDate(content string) *time.Time {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, content); err == nil {
			return &t
		}
	}
	return nil
}

// parseAmount strips everything but digits, decimal point and minus sign,
// parses the remainder and rounds to the nearest whole rupee. Unparseable
// and non-positive values are absent.
func parseAmount(content string) *int64 {
	stripped := nonAmountChars.ReplaceAllString(content, "")
	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil || math.IsNaN(value) || value <= 0 {
		return nil
	}
	rounded := int64(math.Round(value))
	return &rounded
}

// extractItems walks the Items value array. Name resolution order is
// Description, then Name, then the fallback literal; items left with the
// fallback or an empty name are dropped.
func extractItems(itemsField docintel.DocumentField) []models.ReceiptItem {
	items := []models.ReceiptItem{}
	for _, entry := range itemsField.ValueArray {
		props := entry.ValueObject

		name := props["Description"].Content
		if name == "" {
			name = props["Name"].Content
		}
		if name == "" {
			name = itemNameFallback
		}
		name = strings.TrimSpace(name)
		if name == "" || name == itemNameFallback {
			continue
		}

		priceContent := props["Price"].Content
		if priceContent == "" {
			priceContent = props["TotalPrice"].Content
		}
		var price *float64
		if priceContent != "" {
			stripped := nonAmountChars.ReplaceAllString(priceContent, "")
			if value, err := strconv.ParseFloat(stripped, 64); err == nil {
				price = &value
			}
		}

		items = append(items, models.ReceiptItem{Name: name, Price: price})
	}
	return items
}

// buildDescription summarizes the receipt: item names joined, else a
// "Purchase from" line, else empty. Capped at 200 characters.
func buildDescription(merchant *string, items []models.ReceiptItem) string {
	var description string
	if len(items) > 0 {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		description = strings.Join(names, ", ")
	} else if merchant != nil {
		description = "Purchase from " + *merchant
	}

	if runes := []rune(description); len(runes) > maxDescriptionLen {
		description = string(runes[:maxDescriptionLen])
	}
	return description
}
