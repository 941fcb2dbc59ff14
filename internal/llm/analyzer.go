// Package llm converts free-text bookkeeping notes into structured
// transaction guesses using an OpenAI-compatible chat completion API. The
// guess is advisory: callers must get explicit user confirmation before
// persisting anything.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"moneynote/internal/config"
)

const systemPrompt = `你是一个智能记账助手。请分析用户的收支记录并提取关键信息：
1. amount: 支出或收入金额（数字）
2. category: 分类（例如：餐饮、交通、工资等）
3. description: 具体描述
4. type: 类型（"支出"或"收入"）

请用JSON格式返回，示例：
{"amount": 50, "category": "餐饮", "description": "午餐", "type": "支出"}`

// Guess is the model's best-effort reading of a free-text entry.
type Guess struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
}

// Analyzer extracts a transaction guess from free text.
type Analyzer interface {
	AnalyzeTransaction(ctx context.Context, text string) (*Guess, error)
}

// OpenAIAnalyzer calls an OpenAI-compatible chat completion endpoint.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates an Analyzer from the OPENAI_* configuration.
// A non-empty base URL points the client at a compatible third-party endpoint.
func NewOpenAIAnalyzer(cfg *config.Config) *OpenAIAnalyzer {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.OpenAIModel,
	}
}

// AnalyzeTransaction sends the text to the model and parses the JSON guess
// out of the reply. A reply missing amount, category, or type is rejected as
// a whole; no partial guess is returned.
func (a *OpenAIAnalyzer) AnalyzeTransaction(ctx context.Context, text string) (*Guess, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	guess, err := parseGuess(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if guess.Date == "" {
		guess.Date = time.Now().Format("2006-01-02")
	}
	return guess, nil
}

// parseGuess decodes the model reply, tolerating markdown code fences.
func parseGuess(content string) (*Guess, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var guess Guess
	if err := json.Unmarshal([]byte(content), &guess); err != nil {
		return nil, fmt.Errorf("parsing model reply: %w", err)
	}
	if guess.Amount.IsZero() || guess.Category == "" || guess.Type == "" {
		return nil, fmt.Errorf("model reply missing required transaction fields")
	}
	return &guess, nil
}
