package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/google/uuid"
	"github.com/rachitgupta/fintrack-be/internal/core/docintel"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/models"
	"github.com/rachitgupta/fintrack-be/internal/modules/finance/receipt"
	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
	"github.com/rachitgupta/fintrack-be/internal/shared/utils"
)

// Upload constraints. Violations are rejected before the collaborator is
// ever called.
const maxUploadSize = 5 * 1024 * 1024 // 5 MiB

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
}

// ReceiptService orchestrates the ingestion pipeline: upload validation,
// external analysis, field extraction, categorization. analyzer is nil
// when no provider is configured; uploads then fail with
// ErrServiceUnavailable while create-from-receipt keeps working.
type ReceiptService struct {
	analyzer           *docintel.Service
	transactionService *TransactionService
	uploadDir          string
}

func NewReceiptService(analyzer *docintel.Service, transactionService *TransactionService, uploadDir string) *ReceiptService {
	return &ReceiptService{
		analyzer:           analyzer,
		transactionService: transactionService,
		uploadDir:          uploadDir,
	}
}

// AnalyzeUpload validates the uploaded file, runs the external analyzer and
// returns the normalized extraction. The upload is spooled to a temporary
// file for the duration of the request and removed on every path.
func (s *ReceiptService) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader) (*receipt.Extraction, error) {
	if file == nil {
		return nil, apperrors.NewValidation("No file uploaded")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		return nil, apperrors.NewValidation("Invalid file type. Please upload an image (JPEG, PNG, GIF) or PDF file.")
	}
	if file.Size > maxUploadSize {
		return nil, apperrors.NewValidation("File too large. Maximum size is 5MB.")
	}

	if s.analyzer == nil {
		return nil, fmt.Errorf("%w: no analysis provider configured", apperrors.ErrServiceUnavailable)
	}

	path, err := s.spoolUpload(file)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	doc, err := s.analyzer.AnalyzeReceipt(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	extraction := receipt.Extract(doc)

	utils.LogInfo("receipt analyzed", map[string]interface{}{
		"provider": s.analyzer.GetProviderName(),
		"items":    len(extraction.Items),
		"category": extraction.Category,
	})

	return extraction, nil
}

// CreateFromReceipt persists a transaction from a confirmed extraction.
// Validation and metadata normalization are the same as a manual create.
func (s *ReceiptService) CreateFromReceipt(ownerID uuid.UUID, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	return s.transactionService.Create(ownerID, req)
}

// spoolUpload writes the multipart file to a temp file under the configured
// upload directory and returns its path.
func (s *ReceiptService) spoolUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.uploadDir, "receipt-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return tmp.Name(), nil
}
