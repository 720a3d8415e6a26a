package videoproc

import (
	"context"
	"log/slog"
	"path/filepath"

	"tokscout/internal/domain"
)

// Pipeline runs download + analysis for a list of links, strictly
// sequentially. A failed download skips the link; a failed analysis keeps
// the placeholder and moves on.
type Pipeline struct {
	downloader *Downloader
	analyzer   *Analyzer
	log        *slog.Logger
}

func NewPipeline(downloader *Downloader, analyzer *Analyzer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}

	return &Pipeline{
		downloader: downloader,
		analyzer:   analyzer,
		log:        log,
	}
}

// ProcessLink downloads and analyzes a single video.
func (p *Pipeline) ProcessLink(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	result, err := p.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}

	analysis, err := p.analyzer.Analyze(ctx, result.Path)
	if err != nil {
		p.log.Error("analysis failed, keeping placeholder",
			"video", result.Path,
			"error", err.Error(),
		)
	}

	return &domain.VideoMetadata{
		VideoName:  filepath.Base(result.Path),
		VideoTitle: result.Info.Title,
		VideoURL:   url,
		Uploader:   result.Info.Uploader,
		Duration:   result.Info.Duration,
		Analysis:   analysis,
	}, nil
}

// ProcessAll walks the links in order and collects metadata for every
// successfully downloaded video.
func (p *Pipeline) ProcessAll(ctx context.Context, links []string) []domain.VideoMetadata {
	metadata := make([]domain.VideoMetadata, 0, len(links))

	for i, url := range links {
		p.log.Info("processing video",
			"index", i+1,
			"total", len(links),
			"url", url,
		)

		meta, err := p.ProcessLink(ctx, url)
		if err != nil {
			p.log.Error("failed to process video", "url", url, "error", err.Error())
			continue
		}

		metadata = append(metadata, *meta)
	}

	return metadata
}
