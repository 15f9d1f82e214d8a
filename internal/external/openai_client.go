package external

import (
	"context"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/sashabaranov/go-openai"

	"fontpair/internal/models"
	"fontpair/internal/structures"
)

const (
	defaultModel = "gpt-4o"
	maxTokens    = 2048
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(clientConfig), model: model}
}

func (c *OpenAIClient) AnalyzeFont(ctx context.Context, req models.AnalysisRequest) (models.FontAnalysis, error) {
	var user openai.ChatCompletionMessage
	if req.ImageBase64 != "" {
		mimeType := req.MimeType
		if mimeType == "" {
			mimeType = "image/png"
		}
		text := "Identify the typeface in this specimen."
		if req.Description != "" {
			text += " Notes from the user: " + req.Description
		}
		user = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: text},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    fmt.Sprintf("data:%s;base64,%s", mimeType, req.ImageBase64),
						Detail: openai.ImageURLDetailAuto,
					},
				},
			},
		}
	} else {
		user = openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: "Identify the typeface described here: " + req.Description,
		}
	}

	var analysis models.FontAnalysis
	if err := c.complete(ctx, analyzeFontPrompt, user, &analysis); err != nil {
		return models.FontAnalysis{}, err
	}
	if analysis.Status == "" {
		analysis.Status = models.AnalysisStatusOK
	}
	return analysis, nil
}

func (c *OpenAIClient) FindFonts(ctx context.Context, criteria models.SearchCriteria) (models.FontSearchResult, error) {
	brief, err := json.Marshal(criteria)
	if err != nil {
		return models.FontSearchResult{}, err
	}
	user := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: "Brief: " + string(brief),
	}

	var result models.FontSearchResult
	if err := c.complete(ctx, findFontsPrompt, user, &result); err != nil {
		return models.FontSearchResult{}, err
	}
	return result, nil
}

func (c *OpenAIClient) CritiquePairing(ctx context.Context, left, right models.FontAnalysis) (models.PairingCritique, error) {
	fonts, err := json.Marshal(map[string]models.FontAnalysis{"left": left, "right": right})
	if err != nil {
		return models.PairingCritique{}, err
	}
	user := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: "Pairing: " + string(fonts),
	}

	var critique models.PairingCritique
	if err := c.complete(ctx, critiquePairingPrompt, user, &critique); err != nil {
		return models.PairingCritique{}, err
	}
	return critique, nil
}

func (c *OpenAIClient) complete(ctx context.Context, system string, user openai.ChatCompletionMessage, out any) error {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			user,
		},
	}
	// Reasoning models reject MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") || strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return nil
}

// OpenAIClientFactory keeps one client per API key.
type OpenAIClientFactory struct {
	conf    *structures.Config
	mu      sync.Mutex
	clients map[string]*OpenAIClient
}

func NewAIClientFactory(conf *structures.Config) AIClientFactory {
	return &OpenAIClientFactory{conf: conf, clients: make(map[string]*OpenAIClient)}
}

func (f *OpenAIClientFactory) For(apiKey string) (AIClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.clients[apiKey]; ok {
		return c, nil
	}
	c := NewOpenAIClient(apiKey, f.conf.AI.BaseURL, f.conf.AI.Model)
	f.clients[apiKey] = c
	return c, nil
}
