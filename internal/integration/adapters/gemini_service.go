// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/finance-tracker/core/internal/application/adapter"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiService implements adapter.OCRProcessor using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// ProcessReceipt sends the receipt image to Gemini and parses the extracted fields.
func (s *GeminiService) ProcessReceipt(ctx context.Context, image []byte, mimeType string) (*adapter.ReceiptResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("receipt image is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(receiptPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	result, err := parseReceiptResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

const receiptPrompt = `You read shopping receipts. Extract the merchant name, the grand total,
the purchase date and the individual line items from the attached image.

Respond with a single JSON object and nothing else:
{
  "merchant": "store name as printed",
  "total": "grand total as a decimal string, e.g. 42.10",
  "date": "purchase date as YYYY-MM-DD, or empty when unreadable",
  "confidence": 0.0-1.0,
  "line_items": [{"description": "item", "amount": "decimal string"}]
}

Never invent values. Use an empty string for fields you cannot read.`

// geminiReceipt represents the raw response from Gemini.
type geminiReceipt struct {
	Merchant   string             `json:"merchant"`
	Total      string             `json:"total"`
	Date       string             `json:"date"`
	Confidence float64            `json:"confidence"`
	LineItems  []geminiReceiptRow `json:"line_items"`
}

type geminiReceiptRow struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// parseReceiptResponse converts the Gemini answer into a ReceiptResult.
func parseReceiptResponse(resp *genai.GenerateContentResponse) (*adapter.ReceiptResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiReceipt
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	total, err := parseAmount(raw.Total)
	if err != nil {
		return nil, fmt.Errorf("invalid total %q: %w", raw.Total, err)
	}

	result := &adapter.ReceiptResult{
		Merchant:   strings.TrimSpace(raw.Merchant),
		Amount:     total,
		Confidence: clampConfidence(raw.Confidence),
	}

	if raw.Date != "" {
		if date, err := time.Parse(time.DateOnly, raw.Date); err == nil {
			result.Date = date
		}
	}

	for _, row := range raw.LineItems {
		amount, err := parseAmount(row.Amount)
		if err != nil {
			continue // Skip unreadable rows
		}
		result.LineItems = append(result.LineItems, adapter.ReceiptLineItem{
			Description: strings.TrimSpace(row.Description),
			Amount:      amount,
		})
	}

	return result, nil
}

// parseAmount reads a decimal, tolerating currency symbols and a comma decimal separator.
func parseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	cleaned = strings.TrimLeft(cleaned, "$€£R ")
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	return decimal.NewFromString(cleaned)
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
