package extraction

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs OCR through a local Tesseract installation.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates an OCREngine for the given language code
// (e.g. "eng").
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

// Recognize extracts text from the image and estimates confidence as the
// mean word confidence, scaled to 0..1. A confidence of 0 means Tesseract
// reported nothing usable; callers substitute their own default.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", 0, err
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", 0, err
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, err
	}

	confidence := 0.0
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(boxes) > 0 {
		var sum float64
		for _, box := range boxes {
			sum += box.Confidence
		}
		confidence = sum / float64(len(boxes)) / 100
	}

	return text, confidence, nil
}
