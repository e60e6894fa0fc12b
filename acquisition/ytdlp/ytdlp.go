// Package ytdlp implements an acquisition provider that shells out to
// the yt-dlp command-line tool.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skillsenselab/protokoll/acquisition"
	"github.com/skillsenselab/protokoll/process"
	"github.com/skillsenselab/protokoll/provider"
)

const (
	// ProviderName is the registered name for the yt-dlp provider.
	ProviderName = "ytdlp"

	defaultBinary  = "yt-dlp"
	defaultFormat  = "bestaudio[ext=m4a]/bestaudio"
	defaultTimeout = 20 * time.Minute
)

// Config holds configuration for the yt-dlp acquisition provider.
type Config struct {
	// Binary is the yt-dlp executable name or path.
	Binary string `json:"binary"`
	// Format is the yt-dlp format selector for the audio download.
	Format string `json:"format"`
	// Timeout bounds a single download.
	Timeout time.Duration `json:"timeout"`
}

// Provider implements acquisition.Provider using the yt-dlp CLI.
type Provider struct {
	cfg Config
}

// NewProvider creates a new yt-dlp acquisition provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Binary == "" {
		cfg.Binary = defaultBinary
	}
	if cfg.Format == "" {
		cfg.Format = defaultFormat
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{cfg: cfg}
}

// Factory returns a provider.Factory that creates yt-dlp Provider
// instances from a generic config map.
func Factory() provider.Factory[acquisition.Provider] {
	return func(cfg map[string]any) (acquisition.Provider, error) {
		yc := Config{}
		if v, ok := cfg["binary"].(string); ok {
			yc.Binary = v
		}
		if v, ok := cfg["format"].(string); ok {
			yc.Format = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			yc.Timeout = v
		}
		return NewProvider(yc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the yt-dlp binary is on PATH.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	return process.Available(p.cfg.Binary)
}

// Info resolves video metadata via `yt-dlp --dump-single-json` without
// downloading any media.
func (p *Provider) Info(ctx context.Context, url string) (*acquisition.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	res, err := process.Run(ctx, process.Command{
		Binary: p.cfg.Binary,
		Args:   infoArgs(url),
	})
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata: %w (%s)", err, tail(res))
	}

	var raw ytdlpInfo
	if err := json.Unmarshal(res.Stdout, &raw); err != nil {
		return nil, fmt.Errorf("decode yt-dlp metadata: %w", err)
	}
	if raw.Title == "" {
		return nil, fmt.Errorf("yt-dlp metadata: empty title for %s", url)
	}

	info := &acquisition.VideoInfo{
		URL:         raw.WebpageURL,
		Title:       raw.Title,
		Description: raw.Description,
		Duration:    raw.Duration,
	}
	if info.URL == "" {
		info.URL = url
	}
	return info, nil
}

// Download fetches the audio track for the URL into dest.
func (p *Provider) Download(ctx context.Context, url, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	res, err := process.Run(ctx, process.Command{
		Binary: p.cfg.Binary,
		Args:   downloadArgs(p.cfg.Format, url, dest),
	})
	if err != nil {
		return fmt.Errorf("yt-dlp download: %w (%s)", err, tail(res))
	}
	return nil
}

func infoArgs(url string) []string {
	return []string{
		"--dump-single-json",
		"--no-download",
		"--no-playlist",
		url,
	}
}

func downloadArgs(format, url, dest string) []string {
	return []string{
		"--no-playlist",
		"--no-progress",
		"-f", format,
		"-o", dest,
		url,
	}
}

// tail returns the last part of stderr for error messages.
func tail(res *process.Result) string {
	if res == nil || len(res.Stderr) == 0 {
		return "no stderr"
	}
	const max = 512
	s := res.Stderr
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return string(s)
}

// ytdlpInfo is the subset of yt-dlp's JSON dump we care about.
type ytdlpInfo struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	WebpageURL  string  `json:"webpage_url"`
	Duration    float64 `json:"duration"`
}
