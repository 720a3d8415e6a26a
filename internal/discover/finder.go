// Package discover finds candidate channels through a web-search-enabled
// language model and merges them into the channel store.
package discover

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

const systemPromptFormat = `You are a TikTok channel finder focused on pet and animal content creators from %s. Your job is to find and list popular TikTok channels that focus on pets, animals, dogs, cats, and similar content, specifically targeting creators from %s.

REQUIREMENTS:
- Only provide TikTok usernames in this format: @username
- Focus on channels that primarily post pet/animal content
- Find exactly %d unique channels
- Prefer popular/trending creators with high followers from %s
- Include variety: dogs, cats, exotic pets, pet training, funny pets, etc.
- Use web search to find current, active channels
- No explanations needed - just provide the usernames, one per line`

// Search describes one discovery run.
type Search struct {
	Keywords    string
	TargetCount int
	Country     string
}

type Finder struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewFinder(ctx context.Context, apiKey, model string, log *slog.Logger) (*Finder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Finder{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

// FindChannels asks the model for candidate usernames using web search and
// returns them deduplicated, in response order.
func (f *Finder) FindChannels(ctx context.Context, s Search) ([]string, error) {
	if s.TargetCount <= 0 {
		s.TargetCount = 20
	}
	if s.Country == "" {
		s.Country = "US"
	}

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SystemInstruction: genai.NewContentFromText(
			fmt.Sprintf(systemPromptFormat, s.Country, s.Country, s.TargetCount, s.Country),
			genai.RoleUser,
		),
		Temperature:     genai.Ptr[float32](1.0),
		MaxOutputTokens: 10000,
	}

	f.log.Info("searching for channels",
		"keywords", s.Keywords,
		"target", s.TargetCount,
		"country", s.Country,
	)

	resp, err := f.client.Models.GenerateContent(ctx, f.model, genai.Text(userPrompt(s)), cfg)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	usernames := ExtractUsernames(resp.Text())
	if len(usernames) == 0 {
		return nil, fmt.Errorf("no usernames found in model response")
	}

	f.log.Info("channels found", "count", len(usernames))
	return usernames, nil
}

func userPrompt(s Search) string {
	prompt := fmt.Sprintf(
		"Find popular TikTok channels that focus on pet and animal content. Find exactly %d unique channels.",
		s.TargetCount,
	)
	if s.Keywords != "" {
		prompt += fmt.Sprintf(" Focus specifically on channels related to: %s.", s.Keywords)
	}
	return prompt + " Provide TikTok usernames only (@username format), one per line."
}
