package deepseek

import (
	"context"
	"fmt"
	"strings"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Chat sends one system+user prompt pair and returns the trimmed completion
// text.
func (c *Client) Chat(ctx context.Context, system, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNoAPIKey
	}

	res, err := c.r(ctx).
		SetAuthToken(c.apiKey).
		SetBody(&chatRequest{
			Model: c.model,
			Messages: []message{
				{Role: "system", Content: system},
				{Role: "user", Content: prompt},
			},
			Temperature: 0.7,
			MaxTokens:   500,
		}).
		SetResult(&chatResponse{}).
		Post(endpoint)
	if err != nil {
		return "", err
	}

	if res.IsError() {
		return "", fmt.Errorf("provider returned %s", res.Status())
	}

	choices := res.Result().(*chatResponse).Choices
	if len(choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(choices[0].Message.Content), nil
}
