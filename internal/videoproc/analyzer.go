package videoproc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/genai"

	"tokscout/internal/domain"
)

const analysisPrompt = `Analyze this short-form video frame by frame and identify distinct scenes or segments. Provide a comprehensive description in JSON format, breaking down each scene with timestamps and descriptions.

Respond ONLY with valid JSON in the following structure:

{
  "video_summary": "Brief 1-2 sentence overview of the entire video",
  "total_duration": "Total video length in seconds",
  "content_type": "Type of content (dance, comedy, tutorial, lifestyle, food, etc.)",
  "overall_mood": "Overall emotional tone or vibe",
  "scenes": [
    {
      "scene_number": 1,
      "start_timestamp": "0:00",
      "duration": "3.5s",
      "description": "Detailed description of what's happening in this scene",
      "text_overlay": "Any visible text, captions, or graphics in this scene",
      "main_action": "Primary action or focus of this scene",
      "visual_elements": "Key visual elements, colors, lighting for this scene"
    }
  ],
  "audio_elements": {
    "music_type": "Background music description",
    "voice_over": true,
    "sound_effects": "Notable audio elements"
  },
  "visual_style": {
    "camera_work": "Overall camera movements and style",
    "setting": "Location/environment",
    "production_quality": "Low/Medium/High"
  },
  "engagement_elements": ["hooks", "transitions", "calls to action"],
  "suggested_tags": ["relevant", "hashtags", "keywords"],
  "platform_indicators": "TikTok/YouTube/Instagram visual cues or watermarks"
}

IMPORTANT INSTRUCTIONS:
- Identify scene changes based on: cuts, transitions, significant action changes, or text overlay changes
- For each scene, provide accurate timestamp (format: "M:SS" or "SS.S")
- If no text overlay exists in a scene, use "none" for text_overlay field
- Be precise with scene durations and ensure they add up to total video length
- Include ALL visible text overlays, even brief ones
- Your response must be valid JSON only with no additional text

DO NOT include any text outside the JSON structure.`

// Analyzer sends downloaded videos to Gemini for structured scene analysis.
type Analyzer struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAnalyzer(ctx context.Context, apiKey, model string, log *slog.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-pro"
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

	return &Analyzer{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

// Analyze sends the video bytes with the scene-analysis prompt and decodes
// the JSON answer. On any failure it returns the placeholder analysis along
// with the error, so callers can keep the batch moving.
func (a *Analyzer) Analyze(ctx context.Context, videoPath string) (domain.SceneAnalysis, error) {
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return domain.UnavailableAnalysis(), fmt.Errorf("failed to read video: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, "video/mp4"),
			genai.NewPartFromText(analysisPrompt),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, cfg)
	if err != nil {
		return domain.UnavailableAnalysis(), fmt.Errorf("analysis request failed: %w", err)
	}

	var analysis domain.SceneAnalysis
	if err := json.Unmarshal([]byte(resp.Text()), &analysis); err != nil {
		return domain.UnavailableAnalysis(), fmt.Errorf("failed to parse analysis: %w", err)
	}

	a.log.Info("video analyzed",
		"video", videoPath,
		"scenes", len(analysis.Scenes),
		"content_type", analysis.ContentType,
	)

	return analysis, nil
}
