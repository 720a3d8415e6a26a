package domain

// SceneAnalysis is the structured scene breakdown returned by the
// multimodal model for one video.
type SceneAnalysis struct {
	VideoSummary       string        `json:"video_summary"`
	TotalDuration      string        `json:"total_duration"`
	ContentType        string        `json:"content_type"`
	OverallMood        string        `json:"overall_mood"`
	Scenes             []Scene       `json:"scenes"`
	AudioElements      AudioElements `json:"audio_elements"`
	VisualStyle        VisualStyle   `json:"visual_style"`
	EngagementElements []string      `json:"engagement_elements"`
	SuggestedTags      []string      `json:"suggested_tags"`
	PlatformIndicators string        `json:"platform_indicators"`
}

type Scene struct {
	SceneNumber    int    `json:"scene_number"`
	StartTimestamp string `json:"start_timestamp"`
	Duration       string `json:"duration"`
	Description    string `json:"description"`
	TextOverlay    string `json:"text_overlay"`
	MainAction     string `json:"main_action"`
	VisualElements string `json:"visual_elements"`
}

type AudioElements struct {
	MusicType    string `json:"music_type"`
	VoiceOver    bool   `json:"voice_over"`
	SoundEffects string `json:"sound_effects"`
}

type VisualStyle struct {
	CameraWork        string `json:"camera_work"`
	Setting           string `json:"setting"`
	ProductionQuality string `json:"production_quality"`
}

// UnavailableAnalysis is the placeholder stored when the model call fails,
// so a failed analysis never aborts the batch.
func UnavailableAnalysis() SceneAnalysis {
	return SceneAnalysis{
		VideoSummary:  "Analysis not available",
		TotalDuration: "unknown",
		ContentType:   "unknown",
		OverallMood:   "unknown",
		Scenes:        []Scene{},
		AudioElements: AudioElements{
			MusicType:    "unknown",
			SoundEffects: "unknown",
		},
		VisualStyle: VisualStyle{
			CameraWork:        "unknown",
			Setting:           "unknown",
			ProductionQuality: "unknown",
		},
		EngagementElements: []string{},
		SuggestedTags:      []string{},
		PlatformIndicators: "unknown",
	}
}

// VideoMetadata is one entry of the pipeline's metadata JSON output.
type VideoMetadata struct {
	VideoName  string        `json:"video_name"`
	VideoTitle string        `json:"video_title"`
	VideoURL   string        `json:"video_url"`
	Uploader   string        `json:"uploader"`
	Duration   float64       `json:"duration"`
	Analysis   SceneAnalysis `json:"analysis"`
}
