// Package ai talks to an OpenAI-compatible chat-completions endpoint to turn
// extracted document text into multiple-choice questions. The client is
// constructed once in main and handed to the handlers that need it; there is
// no package-level instance.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	models "quizify/internal/models"
	httpClient "quizify/internal/utility/http"
)

const defaultBaseURL = "https://api.openai.com/v1"

const systemPrompt = "You are a helpful assistant that generates quiz questions based on educational content."

const promptTemplate = `Generate %d multiple-choice questions based on the following text.
Format your response as a valid JSON object with a "questions" array where each question has:
1. "question": The question text
2. "options": An array of 4 options, each with "text" and "isCorrect" (boolean) properties

Make sure:
- Only one option should be correct per question
- Questions should test understanding of key concepts
- Options should be plausible but clearly different
- Questions should be diverse and cover different concepts from the text

Text to base questions on:
%s`

// promptTextLimit caps the source text to keep the request inside the model's
// context window.
const promptTextLimit = 4000

type Client struct {
	http    *httpClient.Client
	apiKey  string
	baseURL string
	model   string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:    httpClient.NewHttpClient(),
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   "gpt-3.5-turbo-1106",
	}
}

// Configured reports whether an API key is present. Callers fall back to the
// offline generator when it is not.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateQuestions asks the model for numQuestions questions about text. The
// model's JSON output goes through ParseGeneratedQuestions before anything
// downstream sees it.
func (c *Client) GenerateQuestions(text string, numQuestions int) ([]models.Question, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("ai: api key not configured")
	}

	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	request := chatRequest{
		Model:          c.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(promptTemplate, numQuestions, text)},
		},
		Temperature: 0.7,
	}

	payloadJSON, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	response, err := c.http.Post(c.baseURL+"/chat/completions", strings.NewReader(string(payloadJSON)),
		httpClient.WithHeader("Authorization", "Bearer "+c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("ai: chat completion request: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal([]byte(response), &chatResp); err != nil {
		return nil, fmt.Errorf("ai: unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("ai: response contains no choices")
	}

	return ParseGeneratedQuestions([]byte(chatResp.Choices[0].Message.Content))
}
