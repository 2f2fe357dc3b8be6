package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const fallbackConfidence = 0.6

var (
	totalRe  = regexp.MustCompile(`(?i)(?:total|₹|£|\$)\s*:?\s*([0-9,]+\.?[0-9]*)`)
	numberRe = regexp.MustCompile(`([0-9,]+\.?[0-9]*)`)
	dateRe   = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
)

// HeuristicExtract builds a single expense transaction from raw OCR text
// without the model: the largest plausible amount as the total, a date if
// one is recognizable, and the top of the receipt as the description. Used
// when the model stays overloaded through all retries.
func HeuristicExtract(ocrText string, now time.Time) Candidate {
	var lines []string
	for _, line := range strings.Split(ocrText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	total := decimal.Zero
	for _, line := range lines {
		if m := totalRe.FindStringSubmatch(line); m != nil {
			if amt, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil {
				total = amt
				break
			}
		}
		if m := numberRe.FindStringSubmatch(line); m != nil {
			if amt, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "")); err == nil && amt.GreaterThan(total) {
				total = amt
			}
		}
	}

	date := now
	for _, line := range lines {
		m := dateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if parsed, err := parseExtractedDate(m[1]); err == nil {
			date = parsed
			break
		}
	}

	description := "Receipt Upload"
	if len(lines) > 0 {
		head := strings.Join(lines[:min(3, len(lines))], " ")
		if len(head) > 50 {
			head = head[:50] + "..."
		}
		description = "Receipt: " + head
	}

	amount, _ := total.Float64()
	tx := ExtractedTransaction{
		Type:          "expense",
		Category:      "Shopping",
		Amount:        amount,
		Currency:      "INR",
		Date:          date.Format("2006-01-02"),
		Description:   description,
		PaymentMethod: "other",
		Tags:          []string{"receipt", "fallback-processed"},
	}
	NormalizeSign(&tx)

	return Candidate{
		ExtractedTransaction: tx,
		Page:                 1,
		ParsedDate:           date,
	}
}
