package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
)

// RequestDraft is a suggested request extracted from free text. Drafts are
// never stored; the caller submits them through the store like any form.
type RequestDraft struct {
	ProjectName string          `json:"projectName"`
	Description string          `json:"description"`
	Team        models.Team     `json:"team"`
	Priority    models.Priority `json:"priority"`
	Deadline    string          `json:"deadline,omitempty"`
}

// RequestDrafter extracts request drafts from text.
type RequestDrafter interface {
	DraftRequestsFromText(ctx context.Context, text string) ([]RequestDraft, error)
}

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftRequestsFromText asks the model for project requests found in text
func (s *AIService) DraftRequestsFromText(ctx context.Context, text string) ([]RequestDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`You turn messages into project requests for an internal request board.

Today: %s

Message:
%s

Return a JSON array of requests:
[
  {
    "projectName": "short project name",
    "description": "one or two sentences",
    "team": "one of: Design Team, Dev Team, Marketing Team",
    "priority": "one of: Low, Medium, High",
    "deadline": "YYYY-MM-DD, or empty when no deadline is stated"
  }
]

Rules:
- Return [] when the message contains no project request
- Convert relative dates ("next Friday") to absolute dates
- Return JSON only, no prose`, today, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var drafts []RequestDraft
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return drafts, nil
}

// cleanDrafts drops drafts without a project name and normalizes values the
// board does not know.
func cleanDrafts(drafts []RequestDraft) ([]RequestDraft, error) {
	if len(drafts) == 0 {
		return nil, ErrAINoDraftsGenerated
	}
	if len(drafts) > constants.MaxAIDrafts {
		return nil, fmt.Errorf("AI generated too many drafts (max %d)", constants.MaxAIDrafts)
	}

	valid := make([]RequestDraft, 0, len(drafts))
	for _, d := range drafts {
		d.ProjectName = strings.TrimSpace(d.ProjectName)
		if d.ProjectName == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = models.PriorityLow
		}
		if !d.Team.Valid() {
			d.Team = ""
		}
		if d.Deadline != "" {
			if _, err := time.Parse("2006-01-02", d.Deadline); err != nil {
				d.Deadline = ""
			}
		}
		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidDrafts
	}
	return valid, nil
}
