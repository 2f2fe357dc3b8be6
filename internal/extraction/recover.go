package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRe = regexp.MustCompile("(?i)```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	arrayRe = regexp.MustCompile(`\[[\s\S]*\]`)
	objRe   = regexp.MustCompile(`\{[\s\S]*\}`)
)

// stripFences returns the contents of the first code fence, or the trimmed
// input when there is none.
func stripFences(raw string) string {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// truncateAfterClose cuts trailing chatter after the last closing bracket.
// Models occasionally append prose after the JSON they were asked for.
func truncateAfterClose(s string) string {
	if i := strings.LastIndex(s, "]"); i != -1 {
		return s[:i+1]
	}
	if i := strings.LastIndex(s, "}"); i != -1 {
		return s[:i+1]
	}
	return s
}

// RecoverTransactionArray parses a model response that should contain a JSON
// array of transactions. It tolerates code fences, trailing prose, and a
// bare object instead of an array. Unrecoverable input yields an empty
// slice, never an error.
func RecoverTransactionArray(raw string) []ExtractedTransaction {
	s := truncateAfterClose(stripFences(raw))

	var txs []ExtractedTransaction
	if err := json.Unmarshal([]byte(s), &txs); err == nil {
		return txs
	}

	var single ExtractedTransaction
	if err := json.Unmarshal([]byte(s), &single); err == nil {
		return []ExtractedTransaction{single}
	}

	// Last resort: the first array or object span anywhere in the raw text.
	if block := arrayRe.FindString(raw); block != "" {
		if err := json.Unmarshal([]byte(block), &txs); err == nil {
			return txs
		}
	}
	if block := objRe.FindString(raw); block != "" {
		if err := json.Unmarshal([]byte(block), &single); err == nil {
			return []ExtractedTransaction{single}
		}
	}
	return nil
}

// RecoverTransactionObject parses a model response that should contain a
// single transaction object. Returns nil when nothing parseable is found.
func RecoverTransactionObject(raw string) *ExtractedTransaction {
	s := stripFences(raw)
	if i := strings.LastIndex(s, "}"); i != -1 {
		s = s[:i+1]
	}

	var tx ExtractedTransaction
	if err := json.Unmarshal([]byte(s), &tx); err == nil {
		return &tx
	}

	if block := objRe.FindString(raw); block != "" {
		if err := json.Unmarshal([]byte(block), &tx); err == nil {
			return &tx
		}
	}
	return nil
}
