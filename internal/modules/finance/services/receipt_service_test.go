package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/rachitgupta/fintrack-be/internal/core/docintel"
	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
)

// fakeProvider returns a canned result and counts how often it was called.
type fakeProvider struct {
	result *docintel.AnalyzeResult
	err    error
	calls  int
}

func (p *fakeProvider) AnalyzeReceipt(ctx context.Context, data []byte, contentType string) (*docintel.AnalyzeResult, error) {
	p.calls++
	return p.result, p.err
}

func (p *fakeProvider) GetProviderName() string { return "fake" }

func receiptResult() *docintel.AnalyzeResult {
	return &docintel.AnalyzeResult{Documents: []docintel.ReceiptDocument{{
		Fields: map[string]docintel.DocumentField{
			"MerchantName": {Content: "Cafe Mocha", Confidence: 0.95},
			"Total":        {Content: "₹450.00", Confidence: 0.9},
		},
	}}}
}

// makeFileHeader builds a real multipart.FileHeader by round-tripping a
// multipart body, so FileHeader.Open works in tests.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="receipt"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["receipt"][0]
}

func newTestReceiptService(t *testing.T, provider docintel.Provider) *ReceiptService {
	t.Helper()
	var analyzer *docintel.Service
	if provider != nil {
		analyzer = docintel.NewService(provider)
	}
	transactionService := NewTransactionService(newFakeRepo())
	return NewReceiptService(analyzer, transactionService, t.TempDir())
}

func TestAnalyzeUpload(t *testing.T) {
	provider := &fakeProvider{result: receiptResult()}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))

	extraction, err := service.AnalyzeUpload(context.Background(), file)
	if err != nil {
		t.Fatalf("AnalyzeUpload() error = %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
	if extraction.Merchant == nil || *extraction.Merchant != "Cafe Mocha" {
		t.Errorf("merchant = %v", extraction.Merchant)
	}
	if extraction.Total == nil || *extraction.Total != 450 {
		t.Errorf("total = %v, want 450", extraction.Total)
	}
	if extraction.Category != "Food & Dining" {
		t.Errorf("category = %q", extraction.Category)
	}
	if extraction.Type != "expense" {
		t.Errorf("type = %q, want expense", extraction.Type)
	}
}

func TestAnalyzeUploadRejectsContentType(t *testing.T) {
	provider := &fakeProvider{result: receiptResult()}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "notes.txt", "text/plain", []byte("not a receipt"))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if !apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestAnalyzeUploadRejectsOversizedFile(t *testing.T) {
	provider := &fakeProvider{result: receiptResult()}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "huge.png", "image/png", bytes.Repeat([]byte("x"), 6*1024*1024))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if !apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestAnalyzeUploadNilFile(t *testing.T) {
	service := newTestReceiptService(t, &fakeProvider{result: receiptResult()})

	_, err := service.AnalyzeUpload(context.Background(), nil)
	if !apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestAnalyzeUploadNoProviderConfigured(t *testing.T) {
	service := newTestReceiptService(t, nil)
	file := makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestAnalyzeUploadProviderUnreachable(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("%w: dial tcp: connection refused", apperrors.ErrServiceUnavailable)}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestAnalyzeUploadAnalysisFailureIsNotAnOutage(t *testing.T) {
	// The provider ran and rejected the document. That is an internal
	// failure, not a configuration problem, so it must not carry the
	// service-unavailable kind.
	provider := &fakeProvider{err: errors.New("azure analysis failed: InvalidContent (document corrupt)")}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if err == nil {
		t.Fatal("err = nil, want analysis error")
	}
	if errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("err = %v, must not be ErrServiceUnavailable", err)
	}
	if errors.Is(err, apperrors.ErrNoReceiptData) || apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want plain analysis error", err)
	}
}

func TestAnalyzeUploadNoDocuments(t *testing.T) {
	provider := &fakeProvider{result: &docintel.AnalyzeResult{}}
	service := newTestReceiptService(t, provider)
	file := makeFileHeader(t, "blank.jpg", "image/jpeg", []byte("jpeg-bytes"))

	_, err := service.AnalyzeUpload(context.Background(), file)
	if !errors.Is(err, apperrors.ErrNoReceiptData) {
		t.Fatalf("err = %v, want ErrNoReceiptData", err)
	}
}

func TestAnalyzeUploadCleansUpSpool(t *testing.T) {
	provider := &fakeProvider{result: receiptResult()}
	uploadDir := t.TempDir()
	transactionService := NewTransactionService(newFakeRepo())
	service := NewReceiptService(docintel.NewService(provider), transactionService, uploadDir)
	file := makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))

	if _, err := service.AnalyzeUpload(context.Background(), file); err != nil {
		t.Fatalf("AnalyzeUpload() error = %v", err)
	}

	leftovers, err := filepath.Glob(filepath.Join(uploadDir, "receipt-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("spool files left behind: %v", leftovers)
	}
}
