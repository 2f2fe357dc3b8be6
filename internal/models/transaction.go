package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionSource indicates how a transaction entered the system.
type TransactionSource string

const (
	SourceManual  TransactionSource = "manual"
	SourceReceipt TransactionSource = "receipt"
)

// TransactionMetadata holds provenance for transactions extracted from
// uploaded receipts. Stored as a JSON column.
type TransactionMetadata struct {
	ExtractedFromOCR bool    `json:"extracted_from_ocr,omitempty"`
	OCRRawText       string  `json:"ocr_raw_text,omitempty"`
	ConfidenceScore  float64 `json:"confidence_score,omitempty"`
	OCRPage          int     `json:"ocr_page,omitempty"`
	ProcessingMethod string  `json:"processing_method,omitempty"`
}

// Transaction represents a financial transaction in the system.
// Amounts are signed: expenses are negative, income positive.
type Transaction struct {
	Base
	UserID        uint                 `gorm:"not null;index" json:"user_id"`
	Type          TransactionType      `gorm:"not null" json:"type"`
	Category      string               `gorm:"index" json:"category"`
	Subcategory   string               `json:"subcategory,omitempty"`
	Amount        float64              `gorm:"not null" json:"amount"`
	Currency      string               `gorm:"size:3;default:INR" json:"currency"`
	Date          time.Time            `gorm:"not null;index" json:"date"`
	Description   string               `json:"description"`
	PaymentMethod string               `json:"payment_method"`
	Tags          []string             `gorm:"serializer:json" json:"tags,omitempty"`
	Source        TransactionSource    `gorm:"default:manual" json:"source"`
	Status        string               `gorm:"default:confirmed" json:"status"`
	Metadata      *TransactionMetadata `gorm:"serializer:json" json:"metadata,omitempty"`
}
