// Package extraction turns uploaded receipts into transaction candidates.
// Text is pulled out of the upload with a PDF text layer or OCR, handed to a
// generative model page by page, and the model's JSON is recovered
// tolerantly. A heuristic fallback covers model overload.
package extraction

import (
	"context"
	"fmt"
	"time"
)

// Processing methods recorded in transaction metadata.
const (
	MethodModel    = "gemini"
	MethodFallback = "fallback"
)

// ExtractedTransaction is the JSON shape the model is prompted to return
// for each transaction on a receipt page.
type ExtractedTransaction struct {
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	PaymentMethod string   `json:"paymentMethod"`
	Tags          []string `json:"tags"`
}

// complete reports whether the transaction carries the fields required to
// persist it. Everything else is optional.
func (t *ExtractedTransaction) complete() bool {
	return t.missingField() == ""
}

// missingField names the first required field the transaction lacks, or ""
// when all of them are present.
func (t *ExtractedTransaction) missingField() string {
	switch {
	case t.Type == "":
		return "type"
	case t.Amount == 0:
		return "amount"
	case t.Date == "":
		return "date"
	}
	return ""
}

// empty reports whether the model produced a blank object, which counts as
// "nothing on this page" rather than a bad extraction.
func (t *ExtractedTransaction) empty() bool {
	return t.Type == "" && t.Amount == 0 && t.Date == "" &&
		t.Category == "" && t.Description == ""
}

// Candidate is an extracted transaction tied back to the receipt page it
// came from, with its date parsed.
type Candidate struct {
	ExtractedTransaction
	Page       int
	ParsedDate time.Time
}

// Result is the outcome of processing one receipt upload.
type Result struct {
	Transactions []Candidate
	OCRText      string
	Confidence   float64
	Method       string
}

// OCREngine recognizes text in an image file.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (text string, confidence float64, err error)
}

// PDFTextExtractor pulls the embedded text layer out of a PDF.
type PDFTextExtractor interface {
	ExtractText(pdfPath string) (string, error)
}

// PDFRasterizer renders each PDF page to an image file in outDir and
// returns the page image paths in order.
type PDFRasterizer interface {
	Rasterize(pdfPath, outDir string) ([]string, error)
}

// Completer sends a prompt to a generative model and returns the raw text
// response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RateLimitError marks a model call rejected for overload or rate limiting.
// These calls are retried; other failures are not.
type RateLimitError struct {
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("model temporarily unavailable (status %d)", e.StatusCode)
}
