package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
)

// csvHeader fixes the export column order.
var csvHeader = []string{"Date", "Type", "Category", "Description", "Amount"}

// CSV renders transactions as a CSV document, one row per transaction,
// header row first. Fields containing commas (item-joined descriptions)
// are quoted per RFC 4180.
func CSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		record := []string{
			t.Date.Format("1/2/2006"),
			t.Type,
			t.Category,
			t.Description,
			strconv.FormatInt(t.Amount, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
