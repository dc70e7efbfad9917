// Package llm generates spoken-style assistant replies with the OpenAI chat
// completion API.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/voice-bridge/types"
)

// defaultSystemInstructions fixes the assistant persona. Replies are meant to
// be fed straight into TTS, so they must stay short, conversational and in
// the user's language.
const defaultSystemInstructions = "You are a friendly and helpful voice assistant. " +
	"Reply conversationally in the same language as the user, in one or two short sentences " +
	"that sound natural when read aloud. Do not use markdown, lists or emoji."

type OpenAIClient struct {
	client             *openai.Client
	model              string
	systemInstructions string
}

func NewOpenAIClient(client *openai.Client, model string) (*OpenAIClient, error) {
	if client == nil {
		return nil, fmt.Errorf("openai client is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &OpenAIClient{
		client:             client,
		model:              model,
		systemInstructions: defaultSystemInstructions,
	}, nil
}

// GenerateReply sends a two-message exchange (fixed system persona plus the
// user's text) and returns the first completion's trimmed content.
//
// Each call is stateless: no conversation history is kept between requests.
// Empty input is passed through unmodified; whatever the model returns for it
// is returned as-is.
func (c *OpenAIClient) GenerateReply(ctx context.Context, userText string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemInstructions},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", types.NewUpstreamError(types.StageReply, err)
	}
	if len(resp.Choices) == 0 {
		return "", types.NewUpstreamError(types.StageReply, fmt.Errorf("completion response has no choices"))
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
