package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/chatgpti/webapp-bot/internal/domain"
)

const (
	textModel  = openai.GPT4o
	imageModel = "flux"

	// The backend stores generated images on a fixed CDN, keyed by the
	// completion id it returns.
	imageCDNTemplate = "https://cdn.snapzion.com/a1aa/image/%s.jpeg"

	rateLimitMessage    = "Превышен лимит запросов. Пожалуйста, подождите немного."
	imageFailureMessage = "Ошибка генерации изображения"
)

// GenerationClient implements domain.Generator against an OpenAI-compatible
// chat completion endpoint.
type GenerationClient struct {
	chat    *openai.Client
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewGenerationClient(baseURL, apiKey string) *GenerationClient {
	baseURL = strings.TrimSuffix(baseURL, "/")
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &GenerationClient{
		chat:    openai.NewClientWithConfig(cfg),
		http:    &http.Client{Timeout: 2 * time.Minute},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (c *GenerationClient) GenerateText(ctx context.Context, prompt string) domain.TextResult {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: textModel,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return domain.TextFailure(normalizeError(err))
	}
	if len(resp.Choices) == 0 {
		return domain.TextFailure("generation api: empty response")
	}
	return domain.TextResult{
		Text:   resp.Choices[0].Message.Content,
		Status: domain.StatusSuccess,
	}
}

// imageRequest is a chat completion request with the vendor extension that
// switches the backend into image output mode. go-openai's request struct
// cannot carry the extra field, hence the raw call.
type imageRequest struct {
	openai.ChatCompletionRequest
	Image bool `json:"image"`
}

func (c *GenerationClient) GenerateImage(ctx context.Context, prompt string) domain.ImageResult {
	req := imageRequest{
		ChatCompletionRequest: openai.ChatCompletionRequest{
			Model: imageModel,
			Messages: []openai.ChatCompletionMessage{{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			}},
		},
		Image: true,
	}

	resp, err := c.postCompletion(ctx, req)
	if err != nil {
		return domain.ImageFailure(normalizeError(err))
	}

	if resp.ID == "" || finishedWithError(resp) {
		return domain.ImageFailure(imageErrorMessage(resp))
	}
	return domain.ImageResult{
		URL:    fmt.Sprintf(imageCDNTemplate, resp.ID),
		Status: domain.StatusSuccess,
	}
}

func (c *GenerationClient) postCompletion(ctx context.Context, payload any) (*openai.ChatCompletionResponse, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &openai.APIError{
			HTTPStatusCode: resp.StatusCode,
			Message:        fmt.Sprintf("generation api: status %d", resp.StatusCode),
		}
	}

	var completion openai.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &completion, nil
}

func finishedWithError(resp *openai.ChatCompletionResponse) bool {
	return len(resp.Choices) > 0 && resp.Choices[0].FinishReason == "error"
}

func imageErrorMessage(resp *openai.ChatCompletionResponse) string {
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		return resp.Choices[0].Message.Content
	}
	return imageFailureMessage
}

// normalizeError maps remote failures to user-readable messages. A 429 from
// the backend always yields the rate-limit message, regardless of body.
func normalizeError(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return rateLimitMessage
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return rateLimitMessage
	}
	return err.Error()
}
