// Package videoproc downloads short-form videos with yt-dlp and runs them
// through a multimodal model for scene analysis.
package videoproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	markerChars          = regexp.MustCompile(`[#@]`)

	mediaExtensions = map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".webm": true,
	}
)

// VideoInfo is the subset of yt-dlp's --dump-json output we keep.
type VideoInfo struct {
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
}

type DownloadResult struct {
	Path string
	Info VideoInfo
}

// Downloader shells out to yt-dlp. One Download call is one video.
type Downloader struct {
	outputDir string
	log       *slog.Logger
}

func NewDownloader(outputDir string, log *slog.Logger) *Downloader {
	if outputDir == "" {
		outputDir = "downloads"
	}
	if log == nil {
		log = slog.Default()
	}

	return &Downloader{
		outputDir: outputDir,
		log:       log,
	}
}

// CheckBinary verifies yt-dlp is installed and runnable.
func (d *Downloader) CheckBinary(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "yt-dlp", "--version").Run(); err != nil {
		return fmt.Errorf("yt-dlp not found, please install it first: %w", err)
	}
	return nil
}

// Download fetches the video's metadata, downloads it into the output
// directory and returns the path of the downloaded file.
func (d *Downloader) Download(ctx context.Context, url string) (*DownloadResult, error) {
	if err := os.MkdirAll(d.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	info, err := d.fetchInfo(ctx, url)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", url,
		"-o", filepath.Join(d.outputDir, "%(title)s.%(ext)s"),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("download failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	path, err := d.locateFile(info.Title)
	if err != nil {
		return nil, err
	}

	d.log.Info("video downloaded", "file", filepath.Base(path))

	return &DownloadResult{Path: path, Info: *info}, nil
}

func (d *Downloader) fetchInfo(ctx context.Context, url string) (*VideoInfo, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "yt-dlp", "--dump-json", url)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to get video info: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return parseVideoInfo(stdout.Bytes())
}

func parseVideoInfo(data []byte) (*VideoInfo, error) {
	var info VideoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse video info: %w", err)
	}

	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Uploader == "" {
		info.Uploader = "Unknown"
	}

	return &info, nil
}

// locateFile finds the downloaded file by sanitized title, falling back to
// the newest media file in the output directory.
func (d *Downloader) locateFile(title string) (string, error) {
	sanitized := SanitizeFilename(title)
	if sanitized != "" {
		matches, err := filepath.Glob(filepath.Join(d.outputDir, "*"+sanitized+"*"))
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	entries, err := os.ReadDir(d.outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to scan output dir: %w", err)
	}

	var newest string
	var newestMod int64

	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := fi.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(d.outputDir, entry.Name())
			newestMod = mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("downloaded file not found")
	}
	return newest, nil
}

// SanitizeFilename strips characters yt-dlp drops from output templates so
// the glob lookup matches what landed on disk.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = markerChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "...", "")
	if len(name) > 100 {
		name = name[:100]
	}
	return strings.TrimSpace(name)
}
