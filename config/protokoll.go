package config

import (
	"fmt"
	"time"

	"github.com/skillsenselab/protokoll/redis"
	"github.com/skillsenselab/protokoll/server"
	"github.com/skillsenselab/protokoll/validation"
)

// Default backend names registered by the binaries.
const (
	DefaultAcquisitionProvider   = "ytdlp"
	DefaultDiarizationProvider   = "pyannote"
	DefaultTranscriptionProvider = "whisper"
)

// ProviderConfig selects a named backend and carries its options, which
// are passed to the backend factory untouched.
type ProviderConfig struct {
	Provider string         `yaml:"provider" mapstructure:"provider"`
	Options  map[string]any `yaml:"options" mapstructure:"options"`
}

// PipelineConfig configures job output and per-segment transcription.
type PipelineConfig struct {
	// OutputRoot is the directory job directories are created under.
	OutputRoot string `yaml:"output_root" mapstructure:"output_root" validate:"required"`
	// Language is passed to the transcription backend (e.g. "de").
	Language string `yaml:"language" mapstructure:"language" validate:"omitempty,min=2,max=5"`
	// FFmpegTimeout bounds a single ffmpeg invocation.
	FFmpegTimeout time.Duration `yaml:"ffmpeg_timeout" mapstructure:"ffmpeg_timeout"`
}

// ObservabilityConfig configures OTLP trace and metric export.
type ObservabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"min=0,max=1"`
}

// Config is the full configuration for the protokoll daemon.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Redis         redis.Config        `yaml:"redis" mapstructure:"redis"`
	Pipeline      PipelineConfig      `yaml:"pipeline" mapstructure:"pipeline"`
	Acquisition   ProviderConfig      `yaml:"acquisition" mapstructure:"acquisition"`
	Diarization   ProviderConfig      `yaml:"diarization" mapstructure:"diarization"`
	Transcription ProviderConfig      `yaml:"transcription" mapstructure:"transcription"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`

	// Workers is the number of queue worker goroutines.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"min=0,max=16"`
}

// Load loads, defaults, and validates the configuration for a service.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills in defaults for unset fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Redis.ApplyDefaults()

	if c.Pipeline.OutputRoot == "" {
		c.Pipeline.OutputRoot = "output"
	}
	if c.Pipeline.Language == "" {
		c.Pipeline.Language = "de"
	}
	if c.Pipeline.FFmpegTimeout == 0 {
		c.Pipeline.FFmpegTimeout = 10 * time.Minute
	}
	if c.Acquisition.Provider == "" {
		c.Acquisition.Provider = DefaultAcquisitionProvider
	}
	if c.Diarization.Provider == "" {
		c.Diarization.Provider = DefaultDiarizationProvider
	}
	if c.Transcription.Provider == "" {
		c.Transcription.Provider = DefaultTranscriptionProvider
	}
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
		c.Observability.Insecure = true
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

// Validate checks the configuration, both section validators and struct tags.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
