package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/repositories"
	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TransactionService owns transaction CRUD semantics. Every operation takes
// the acting user's id explicitly; the owner is never read from ambient
// state and never taken from the request body.
type TransactionService struct {
	repo repositories.TransactionRepo
}

func NewTransactionService(repo repositories.TransactionRepo) *TransactionService {
	return &TransactionService{repo: repo}
}

// List returns all transactions owned by the user, newest first
func (s *TransactionService) List(ownerID uuid.UUID) ([]models.Transaction, error) {
	transactions, err := s.repo.ListByUser(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// Create validates and persists a new transaction for the user
func (s *TransactionService) Create(ownerID uuid.UUID, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Type == "" || req.Amount == 0 || req.Category == "" {
		return nil, apperrors.NewValidation("Please provide type, amount, and category")
	}
	if req.Type != models.TypeIncome && req.Type != models.TypeExpense {
		return nil, apperrors.NewValidation("Type must be 'income' or 'expense'")
	}

	amount, err := roundAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	metadata, err := buildReceiptMetadata(req.ReceiptMetadata)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:          ownerID,
		Type:            req.Type,
		Amount:          amount,
		Currency:        models.CurrencyINR,
		Category:        req.Category,
		Description:     req.Description,
		Date:            date,
		ReceiptMetadata: metadata,
	}

	if err := s.repo.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return transaction, nil
}

// Update merges the provided fields into the user's transaction. A missing
// record and a record owned by someone else are both not-found.
func (s *TransactionService) Update(ownerID uuid.UUID, id uuid.UUID, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.repo.GetByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if req.Amount != nil {
		amount, err := roundAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		transaction.Amount = amount
	}
	if req.Type != nil {
		if *req.Type != models.TypeIncome && *req.Type != models.TypeExpense {
			return nil, apperrors.NewValidation("Type must be 'income' or 'expense'")
		}
		transaction.Type = *req.Type
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, apperrors.NewValidation("Category cannot be empty")
		}
		transaction.Category = *req.Category
	}
	if req.Description != nil {
		transaction.Description = *req.Description
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	transaction.Currency = models.CurrencyINR

	if err := s.repo.Update(transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return transaction, nil
}

// Delete removes the user's transaction by id
func (s *TransactionService) Delete(ownerID uuid.UUID, id uuid.UUID) error {
	affected, err := s.repo.Delete(id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// roundAmount rounds to the nearest whole rupee and rejects anything that
// does not end up a positive integer.
func roundAmount(amount float64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.NewValidation("Amount must be greater than 0")
	}
	rounded := int64(math.Round(amount))
	if rounded <= 0 {
		return 0, apperrors.NewValidation("Amount must be greater than 0")
	}
	return rounded, nil
}

// buildReceiptMetadata normalizes the client-supplied metadata. Without
// input the stored sidecar is just {"hasReceipt": false}.
func buildReceiptMetadata(input *models.ReceiptMetadataInput) (datatypes.JSON, error) {
	metadata := models.ReceiptMetadata{}
	if input != nil {
		metadata.HasReceipt = true
		metadata.Merchant = input.Merchant
		metadata.TransactionDate = input.TransactionDate
		metadata.Items = input.Items
		if metadata.Items == nil {
			metadata.Items = []models.ReceiptItem{}
		}
		if input.Confidence != nil {
			metadata.Confidence = *input.Confidence
		}
	}

	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal receipt metadata: %w", err)
	}
	return datatypes.JSON(raw), nil
}
