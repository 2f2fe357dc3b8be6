package extraction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/logger"
)

const (
	maxModelAttempts = 3
	retryBaseDelay   = 2 * time.Second

	defaultImageConfidence   = 0.7
	pdfTextLayerConfidence   = 0.9
	defaultOverallConfidence = 0.8
)

// errOverloaded signals that every model attempt was rejected for overload,
// routing the upload to the heuristic fallback.
var errOverloaded = errors.New("model overloaded after retries")

// Pipeline processes receipt uploads end to end.
type Pipeline struct {
	ocr       OCREngine
	pdfText   PDFTextExtractor
	rasterize PDFRasterizer
	completer Completer

	// sleep and now are swapped in tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(ocr OCREngine, pdfText PDFTextExtractor, rasterize PDFRasterizer, completer Completer) *Pipeline {
	return &Pipeline{
		ocr:       ocr,
		pdfText:   pdfText,
		rasterize: rasterize,
		completer: completer,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Process extracts transactions from the uploaded file at filePath.
// originalName decides PDF vs image handling by extension.
//
// An empty Transactions slice with a nil error means the receipt was read
// but no transaction was detected. Candidates the model returns without a
// type, amount or date surface as ErrMissingExtractedField; dates in a
// format we cannot parse surface as ErrInvalidExtractedDate.
func (p *Pipeline) Process(ctx context.Context, filePath, originalName string) (*Result, error) {
	pages, ocrText, confidence, err := p.readText(ctx, filePath, originalName)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExtractionFailed, err)
	}

	candidates, err := p.extractFromPages(ctx, pages)
	if errors.Is(err, errOverloaded) {
		logger.Get().Warnw("model overloaded, using heuristic fallback", "file", originalName)
		return &Result{
			Transactions: []Candidate{HeuristicExtract(ocrText, p.now())},
			OCRText:      ocrText,
			Confidence:   fallbackConfidence,
			Method:       MethodFallback,
		}, nil
	}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrExtractionFailed, err)
	}

	if confidence == 0 {
		confidence = defaultOverallConfidence
	}
	return &Result{
		Transactions: candidates,
		OCRText:      ocrText,
		Confidence:   confidence,
		Method:       MethodModel,
	}, nil
}

// readText pulls text out of the upload, split into pages. PDFs try the
// embedded text layer first and fall back to rasterizing each page for OCR.
func (p *Pipeline) readText(ctx context.Context, filePath, originalName string) (pages []string, full string, confidence float64, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == ".pdf" {
		text, textErr := p.pdfText.ExtractText(filePath)
		if textErr == nil && strings.TrimSpace(text) != "" {
			return splitPages(text), text, pdfTextLayerConfidence, nil
		}
		if textErr != nil {
			logger.Get().Debugw("no pdf text layer, rasterizing", "file", originalName, "error", textErr)
		}
		return p.ocrPDFPages(ctx, filePath)
	}

	text, conf, ocrErr := p.ocr.Recognize(ctx, filePath)
	if ocrErr != nil {
		return nil, "", 0, fmt.Errorf("ocr image: %w", ocrErr)
	}
	if conf == 0 {
		conf = defaultImageConfidence
	}
	return splitPages(text), text, conf, nil
}

// ocrPDFPages rasterizes the PDF and runs OCR per page. The overall
// confidence is the worst page's confidence. Page images are removed before
// returning on every path.
func (p *Pipeline) ocrPDFPages(ctx context.Context, filePath string) (pages []string, full string, confidence float64, err error) {
	outDir := filePath + "_pages"
	defer os.RemoveAll(outDir)

	imagePaths, err := p.rasterize.Rasterize(filePath, outDir)
	if err != nil {
		return nil, "", 0, fmt.Errorf("rasterize pdf: %w", err)
	}

	minConf := 1.0
	var all strings.Builder
	for _, imagePath := range imagePaths {
		text, conf, err := p.ocr.Recognize(ctx, imagePath)
		if err != nil {
			return nil, "", 0, fmt.Errorf("ocr pdf page: %w", err)
		}
		if conf == 0 {
			conf = defaultImageConfidence
		}
		if conf < minConf {
			minConf = conf
		}
		pages = append(pages, text)
		all.WriteString(text)
		all.WriteString("\n")
	}
	if len(pages) == 0 {
		return nil, "", 0, fmt.Errorf("pdf produced no pages")
	}
	return pages, all.String(), minConf, nil
}

// splitPages splits OCR output on form feeds, which mark page breaks.
func splitPages(text string) []string {
	if strings.Contains(text, "\f") {
		return strings.Split(text, "\f")
	}
	return []string{text}
}

// extractFromPages runs the model over each page and collects
// sign-normalized candidates with parsed dates. Blank objects are dropped;
// partially filled ones are rejected.
func (p *Pipeline) extractFromPages(ctx context.Context, pages []string) ([]Candidate, error) {
	log := logger.Get()
	var candidates []Candidate

	for i, pageText := range pages {
		if strings.TrimSpace(pageText) == "" {
			continue
		}

		raw, err := p.completeWithRetry(ctx, arrayPrompt(pageText))
		if err != nil {
			return nil, err
		}

		txs := RecoverTransactionArray(raw)
		if len(txs) == 0 {
			// Second chance: ask for a single transaction. Failures here
			// are logged and ignored; the page simply yields nothing.
			single, err := p.completer.Complete(ctx, singlePrompt(pageText))
			if err != nil {
				log.Debugw("single-transaction prompt failed", "page", i+1, "error", err)
			} else if tx := RecoverTransactionObject(single); tx != nil && tx.complete() {
				txs = []ExtractedTransaction{*tx}
			}
		}

		for _, tx := range txs {
			if tx.empty() {
				continue
			}
			if field := tx.missingField(); field != "" {
				return nil, apperrors.Wrap(apperrors.ErrMissingExtractedField,
					fmt.Errorf("missing required field: %s", field))
			}
			NormalizeSign(&tx)
			parsed, err := parseExtractedDate(tx.Date)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInvalidExtractedDate, err)
			}
			candidates = append(candidates, Candidate{
				ExtractedTransaction: tx,
				Page:                 i + 1,
				ParsedDate:           parsed,
			})
		}
	}
	return candidates, nil
}

// completeWithRetry calls the model up to maxModelAttempts times, backing
// off 2s then 4s, but only for overload rejections. Exhausting retries on
// overload returns errOverloaded so the caller can fall back.
func (p *Pipeline) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxModelAttempts; attempt++ {
		if attempt > 0 {
			logger.Get().Infow("retrying model call", "attempt", attempt+1, "max", maxModelAttempts)
			p.sleep(retryBaseDelay * time.Duration(attempt))
		}

		raw, err := p.completer.Complete(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var rateErr *RateLimitError
		if !errors.As(err, &rateErr) {
			return "", err
		}
	}
	var rateErr *RateLimitError
	if errors.As(lastErr, &rateErr) {
		return "", errOverloaded
	}
	return "", lastErr
}
