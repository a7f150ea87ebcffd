// Package answer turns a query and retrieved context into a response,
// either through a chat model or an extractive fallback.
package answer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// MinContextChars is the threshold below which retrieved context is
// considered too thin to ground an answer.
const MinContextChars = 50

// Config configures the chat-backed generator.
type Config struct {
	APIKeyEnv string
	BaseURL   string
	Model     string
	Timeout   time.Duration
}

// Client generates answers with a chat completion model.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient creates a generator, or returns an error when the API key is
// not configured. Callers treat a missing client as "fallback mode".
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	clientCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{api: goopenai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// Generate answers the query grounded in the retrieved context.
func (c *Client) Generate(ctx context.Context, query, contextText string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt(query, contextText)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateDirect answers without retrieved context, for when no index has
// been built yet.
func (c *Client) GenerateDirect(ctx context.Context, query string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: "Question: " + query + "\n\nNo document excerpts are available; answer from general knowledge, state that clearly, and keep the answer concise."},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

const systemPrompt = `You are a legal assistant specializing in Indian law (IPC, CrPC and related statutes).
Answer primarily from the provided document excerpts and cite specific sections when available.
If the excerpts are insufficient, you may supplement from general knowledge but say so clearly.
Always end with a note that this is informational only and not legal advice.`

func userPrompt(query, contextText string) string {
	var b strings.Builder
	b.WriteString("Document excerpts:\n")
	b.WriteString(contextText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	b.WriteString("\n\nAnswer with the relevant provisions, a brief plain-language explanation, and citations to the excerpts.")
	return b.String()
}

// Fallback builds an extractive answer from the retrieved context when no
// generator is available or the generation call failed.
func Fallback(query, contextText string) string {
	if strings.TrimSpace(contextText) == "" {
		return fmt.Sprintf("No relevant information was found in the indexed documents for: %q\n\n"+
			"Try rephrasing the question, or ingest more documents.", query)
	}
	return fmt.Sprintf("Based on the indexed documents:\n\n%s\n\n---\n\n"+
		"The excerpts above are the passages most relevant to %q. "+
		"Review the cited sections for the precise provisions.\n\n"+
		"Disclaimer: this is informational only and not legal advice.", contextText, query)
}
