package handlers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "moneymap/internal/errors"
	"moneymap/internal/extraction"
	"moneymap/internal/logger"
	"moneymap/internal/models"
	"moneymap/internal/services"
)

// ReceiptProcessor extracts transactions from an uploaded receipt file.
// Satisfied by *extraction.Pipeline.
type ReceiptProcessor interface {
	Process(ctx context.Context, filePath, originalName string) (*extraction.Result, error)
}

// ReceiptHandler handles receipt upload and extraction requests.
type ReceiptHandler struct {
	processor          ReceiptProcessor
	transactionService services.TransactionServicer
	uploadDir          string
}

// NewReceiptHandler creates a new ReceiptHandler. Uploads are staged in
// uploadDir; pass "" for the system temp directory.
func NewReceiptHandler(processor ReceiptProcessor, transactionService services.TransactionServicer, uploadDir string) *ReceiptHandler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &ReceiptHandler{
		processor:          processor,
		transactionService: transactionService,
		uploadDir:          uploadDir,
	}
}

// UploadReceipt accepts a receipt image or PDF and records the transactions
// found in it
// @Summary     Upload a receipt
// @Description Extract transactions from a receipt image or PDF and record them
// @Tags        receipts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       receipt formData file true "Receipt image or PDF"
// @Success     200 {object} models.Transaction "Extracted transaction(s), or a message when none were detected"
// @Failure     400 {object} ErrorResponse "No file, missing fields, or unparseable date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Extraction failed"
// @Router      /receipts [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		respondWithError(c, apperrors.ErrNoFileUploaded)
		return
	}

	// Stage the upload under a random name; the original extension only
	// survives via originalName handed to the processor.
	stagedPath := filepath.Join(h.uploadDir, uuid.New().String())
	if err := c.SaveUploadedFile(file, stagedPath); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer func() {
		if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
			logger.Get().Warnw("failed to remove staged receipt", "path", stagedPath, "error", err)
		}
	}()

	result, err := h.processor.Process(c.Request.Context(), stagedPath, file.Filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(result.Transactions) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No transactions detected in this receipt."})
		return
	}

	inputs := make([]services.TransactionInput, 0, len(result.Transactions))
	for _, candidate := range result.Transactions {
		inputs = append(inputs, services.TransactionInput{
			Type:          models.TransactionType(candidate.Type),
			Category:      candidate.Category,
			Subcategory:   candidate.Subcategory,
			Amount:        candidate.Amount,
			Currency:      candidate.Currency,
			Date:          candidate.ParsedDate,
			Description:   candidate.Description,
			PaymentMethod: candidate.PaymentMethod,
			Tags:          candidate.Tags,
			Metadata: &models.TransactionMetadata{
				ExtractedFromOCR: true,
				OCRRawText:       result.OCRText,
				ConfidenceScore:  result.Confidence,
				OCRPage:          candidate.Page,
				ProcessingMethod: result.Method,
			},
		})
	}

	saved, err := h.transactionService.CreateFromReceipt(userID, inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Get().Infow("receipt processed",
		"user_id", userID,
		"file", file.Filename,
		"transactions", len(saved),
		"method", result.Method,
	)

	if result.Method == extraction.MethodFallback {
		c.JSON(http.StatusOK, gin.H{
			"message":           "Receipt processed with basic extraction (AI service temporarily unavailable)",
			"transactions":      saved,
			"processing_method": result.Method,
		})
		return
	}

	if len(saved) == 1 {
		c.JSON(http.StatusOK, gin.H{"transaction": saved[0]})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": saved})
}
