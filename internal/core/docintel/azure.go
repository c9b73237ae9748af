package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
)

// AzureProvider implements document analysis using the Azure Document
// Intelligence prebuilt-receipt model.
type AzureProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

const azureAPIVersion = "2023-07-31"

// NewAzureProvider creates a new Azure Document Intelligence provider.
// Construction fails when credentials are missing, so a configured
// provider is always usable.
func NewAzureProvider(endpoint, apiKey string) (*AzureProvider, error) {
	if endpoint == "" || apiKey == "" {
		return nil, fmt.Errorf("azure document intelligence endpoint and key are required")
	}
	return &AzureProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GetProviderName returns the provider name
func (p *AzureProvider) GetProviderName() string {
	return "Azure Document Intelligence"
}

// azureOperation is the polled analysis operation state
type azureOperation struct {
	Status        string         `json:"status"`
	AnalyzeResult *AnalyzeResult `json:"analyzeResult"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeReceipt submits the file to the prebuilt-receipt model and polls
// the returned operation until it completes.
func (p *AzureProvider) AnalyzeReceipt(ctx context.Context, data []byte, contentType string) (*AnalyzeResult, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/prebuilt-receipt:analyze?api-version=%s", p.endpoint, azureAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: azure analyze request failed: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		// Rejected credentials mean misconfiguration, not a bad document
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("%w: azure rejected credentials (status: %d)", apperrors.ErrServiceUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("azure analyze error (status: %d): %s", resp.StatusCode, string(body))
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return nil, fmt.Errorf("azure analyze response missing Operation-Location header")
	}

	return p.pollOperation(ctx, operationURL)
}

// pollOperation polls the analysis operation until it succeeds or fails.
func (p *AzureProvider) pollOperation(ctx context.Context, operationURL string) (*AnalyzeResult, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: azure poll request failed: %v", apperrors.ErrServiceUnavailable, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read poll response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("azure poll error (status: %d): %s", resp.StatusCode, string(body))
		}

		var op azureOperation
		if err := json.Unmarshal(body, &op); err != nil {
			return nil, fmt.Errorf("failed to parse poll response: %w", err)
		}

		switch op.Status {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return &AnalyzeResult{}, nil
			}
			return op.AnalyzeResult, nil
		case "failed":
			if op.Error != nil {
				return nil, fmt.Errorf("azure analysis failed: %s (%s)", op.Error.Message, op.Error.Code)
			}
			return nil, fmt.Errorf("azure analysis failed")
		case "running", "notStarted":
			// keep polling
		default:
			return nil, fmt.Errorf("azure analysis returned unknown status: %s", op.Status)
		}
	}
}
