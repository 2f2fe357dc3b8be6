package extraction

import (
	"math"
	"time"
)

// NormalizeSign forces the amount sign to match the transaction type:
// expenses negative, income positive. The model is prompted to return
// positive magnitudes but does not always comply.
func NormalizeSign(tx *ExtractedTransaction) {
	switch tx.Type {
	case "expense":
		tx.Amount = -math.Abs(tx.Amount)
	case "income":
		tx.Amount = math.Abs(tx.Amount)
	}
}

// dateLayouts are tried in order when parsing model-returned dates. The
// prompt asks for ISO format but receipts drag the model toward regional
// formats often enough that a few extras are worth accepting.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseExtractedDate parses a model-returned date string.
func parseExtractedDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
