// Package docintel talks to the external receipt document-analysis
// collaborator. Providers return the analysis result in the Azure
// prebuilt-receipt field shape regardless of which backend produced it.
package docintel

import (
	"context"

	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
)

// DocumentField is one named field of an analyzed document. Composite
// fields (like Items) carry their children in ValueArray / ValueObject.
type DocumentField struct {
	Content     string                   `json:"content,omitempty"`
	Confidence  float64                  `json:"confidence,omitempty"`
	ValueArray  []DocumentField          `json:"valueArray,omitempty"`
	ValueObject map[string]DocumentField `json:"valueObject,omitempty"`
}

// ReceiptDocument is one recognized document with its named fields
// (MerchantName, MerchantAddress, TransactionDate, Total, Items).
type ReceiptDocument struct {
	Fields map[string]DocumentField `json:"fields"`
}

// AnalyzeResult is the full result of one analysis run.
type AnalyzeResult struct {
	Documents []ReceiptDocument `json:"documents"`
}

// Provider interface for document-analysis backends
type Provider interface {
	// AnalyzeReceipt analyzes a receipt file and returns structured fields
	AnalyzeReceipt(ctx context.Context, data []byte, contentType string) (*AnalyzeResult, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// Service wraps the analysis provider
type Service struct {
	provider Provider
}

// NewService creates a new analysis service with the given provider
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// AnalyzeReceipt runs the provider and returns the first recognized
// document. Provider errors pass through unchanged: providers tag
// connectivity and credential failures with ErrServiceUnavailable
// themselves, and an analysis that ran but failed on the document stays
// a plain error. A run that recognizes nothing surfaces as
// ErrNoReceiptData so callers can message the user differently.
func (s *Service) AnalyzeReceipt(ctx context.Context, data []byte, contentType string) (*ReceiptDocument, error) {
	result, err := s.provider.AnalyzeReceipt(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	if result == nil || len(result.Documents) == 0 {
		return nil, apperrors.ErrNoReceiptData
	}

	return &result.Documents[0], nil
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
