package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICoachClient talks to the OpenAI chat-completions API. Persona and
// snapshot go into the system message; the user's utterance rides along as
// the user message.
type OpenAICoachClient struct {
	client *openai.Client
	model  string
}

// NewOpenAICoachClient builds the client. A missing key is only an error
// when the coach is actually consulted.
func NewOpenAICoachClient(apiKey, model string) *OpenAICoachClient {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &OpenAICoachClient{client: client, model: model}
}

func (c *OpenAICoachClient) Advise(ctx context.Context, persona, userInput string, snapshot CoachContext) (string, error) {
	if c.client == nil {
		return "", errors.New("OPENAI_API_KEY not set")
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: coachPrompt(persona, userInput, snapshot)},
			{Role: openai.ChatMessageRoleUser, Content: userInput},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func coachPrompt(persona, userInput string, snapshot CoachContext) string {
	pending := "None"
	if len(snapshot.PendingTasks) > 0 {
		pending = strings.Join(snapshot.PendingTasks, ", ")
	}

	habits := "None"
	if len(snapshot.ActiveHabits) > 0 {
		parts := make([]string, 0, len(snapshot.ActiveHabits))
		for _, h := range snapshot.ActiveHabits {
			parts = append(parts, fmt.Sprintf("%s (streak: %d)", h.Name, h.Streak))
		}
		habits = strings.Join(parts, ", ")
	}

	return fmt.Sprintf(`You are an AI coach with the following persona: %s

User Context:
- Level: %d
- Experience Points: %d
- Chrono Points: %d
- Pending Tasks: %s
- Active Habits: %s

User Input: %s

Please provide motivational guidance and practical advice while staying in character as the specified persona.`,
		persona,
		snapshot.UserLevel,
		snapshot.UserExp,
		snapshot.ChronoPoints,
		pending,
		habits,
		userInput,
	)
}
