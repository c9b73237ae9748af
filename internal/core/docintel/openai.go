package docintel

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rachitgupta/fintrack-be/internal/shared/apperrors"
)

// OpenAIProvider implements document analysis with a vision-capable chat
// model. The model output is normalized into the same field shape the
// Azure prebuilt-receipt model produces, so the extractor downstream does
// not care which provider ran.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI vision provider.
func NewOpenAIProvider(apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}, nil
}

// GetProviderName returns the provider name
func (p *OpenAIProvider) GetProviderName() string {
	return "OpenAI Vision"
}

// openaiReceipt is the JSON contract the prompt asks the model for.
type openaiReceipt struct {
	MerchantName    string  `json:"merchant_name"`
	MerchantAddress string  `json:"merchant_address"`
	TransactionDate string  `json:"transaction_date"`
	Total           string  `json:"total"`
	Items           []struct {
		Description string `json:"description"`
		Price       string `json:"price"`
	} `json:"items"`
	Confidence float64 `json:"confidence"`
}

const receiptPrompt = `You are a receipt reader. Extract the fields of the receipt in the image and return ONLY a valid JSON object with this exact structure, no markdown, no explanation:

{
  "merchant_name": "store name as printed, or empty string",
  "merchant_address": "address as printed, or empty string",
  "transaction_date": "date as printed, e.g. 2024-01-15, or empty string",
  "total": "grand total as printed, e.g. $45.60, or empty string",
  "items": [{"description": "line item name", "price": "line item price as printed"}],
  "confidence": 0.0
}

confidence is your overall certainty between 0 and 1. Use empty strings for anything you cannot read.`

// AnalyzeReceipt sends the image to the chat model and converts the JSON
// reply into an AnalyzeResult.
func (p *OpenAIProvider) AnalyzeReceipt(ctx context.Context, data []byte, contentType string) (*AnalyzeResult, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: receiptPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURI,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai request failed: %v", apperrors.ErrServiceUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	// Strip markdown fences if the model wrapped the JSON anyway
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var receipt openaiReceipt
	if err := json.Unmarshal([]byte(content), &receipt); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	return &AnalyzeResult{Documents: []ReceiptDocument{receipt.toDocument()}}, nil
}

// toDocument maps the model's flat JSON into the Azure field shape.
func (r openaiReceipt) toDocument() ReceiptDocument {
	confidence := r.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.5
	}

	fields := make(map[string]DocumentField)
	if r.MerchantName != "" {
		fields["MerchantName"] = DocumentField{Content: r.MerchantName, Confidence: confidence}
	}
	if r.MerchantAddress != "" {
		fields["MerchantAddress"] = DocumentField{Content: r.MerchantAddress}
	}
	if r.TransactionDate != "" {
		fields["TransactionDate"] = DocumentField{Content: r.TransactionDate, Confidence: confidence}
	}
	if r.Total != "" {
		fields["Total"] = DocumentField{Content: r.Total, Confidence: confidence}
	}

	if len(r.Items) > 0 {
		values := make([]DocumentField, 0, len(r.Items))
		for _, item := range r.Items {
			obj := make(map[string]DocumentField)
			if item.Description != "" {
				obj["Description"] = DocumentField{Content: item.Description}
			}
			if item.Price != "" {
				obj["Price"] = DocumentField{Content: item.Price}
			}
			values = append(values, DocumentField{ValueObject: obj})
		}
		fields["Items"] = DocumentField{ValueArray: values}
	}

	return ReceiptDocument{Fields: fields}
}
