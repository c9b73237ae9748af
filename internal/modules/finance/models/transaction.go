package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// CurrencyINR is the only supported currency. Amounts are whole rupees.
const CurrencyINR = "INR"

// Transaction represents one income or expense record owned by a user
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_user" json:"userId"`
	Type        string    `gorm:"type:varchar(10);not null" json:"type"` // 'income' or 'expense'
	Amount      int64     `gorm:"not null" json:"amount"`                // whole rupees, always > 0
	Currency    string    `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
	Category    string    `gorm:"type:text;not null" json:"category"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Date        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_transactions_date" json:"date"`

	// Sidecar data for receipt-scanned transactions, {"hasReceipt":false} otherwise
	ReceiptMetadata datatypes.JSON `gorm:"type:jsonb" json:"receiptMetadata"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate sets UUID before creating
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ReceiptItem is one line item read off a scanned receipt
type ReceiptItem struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

// ReceiptConfidence carries the analyzer's per-field certainty, each in [0,1]
type ReceiptConfidence struct {
	Merchant float64 `json:"merchant"`
	Total    float64 `json:"total"`
	Date     float64 `json:"date"`
}

// ReceiptMetadata is the structured sidecar stored with a transaction.
// HasReceipt == false means none of the other fields are meaningful.
type ReceiptMetadata struct {
	HasReceipt      bool              `json:"hasReceipt"`
	Merchant        *string           `json:"merchant,omitempty"`
	TransactionDate *time.Time        `json:"transactionDate,omitempty"`
	Items           []ReceiptItem     `json:"items,omitempty"`
	Confidence      ReceiptConfidence `json:"confidence"`
}

// ReceiptMetadataInput is the client-supplied metadata on create
type ReceiptMetadataInput struct {
	Merchant        *string            `json:"merchant"`
	TransactionDate *time.Time         `json:"transactionDate"`
	Items           []ReceiptItem      `json:"items"`
	Confidence      *ReceiptConfidence `json:"confidence"`
}

// CreateTransactionRequest is the POST /api/transactions payload
type CreateTransactionRequest struct {
	Type            string                `json:"type"`
	Amount          float64               `json:"amount"`
	Category        string                `json:"category"`
	Description     string                `json:"description"`
	Date            *time.Time            `json:"date"`
	ReceiptMetadata *ReceiptMetadataInput `json:"receiptMetadata"`
}

// UpdateTransactionRequest is the PUT /api/transactions/:id payload.
// Absent fields keep their stored values.
type UpdateTransactionRequest struct {
	Type        *string    `json:"type"`
	Amount      *float64   `json:"amount"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}
