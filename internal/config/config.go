package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLLMModel      = "gemini-1.5-flash"
	DefaultSpeechModelID = "scribe_v1"
	DefaultSpeechBaseURL = "https://api.elevenlabs.io"
	DefaultMaxAudioBytes = 20 * 1024 * 1024
	DefaultMaxParallel   = 4
)

type Config struct {
	Speech   SpeechConfig   `yaml:"speech"`
	LLM      LLMConfig      `yaml:"llm"`
	Audio    AudioConfig    `yaml:"audio"`
	Output   OutputConfig   `yaml:"output"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SpeechConfig struct {
	APIKey      string `yaml:"api_key"`
	ModelID     string `yaml:"model_id"`
	BaseURL     string `yaml:"base_url"`
	ContentType string `yaml:"content_type"` // overrides detection when set
}

type LLMConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	Concurrent  bool   `yaml:"concurrent"`
	MaxParallel int    `yaml:"max_parallel"`
}

type AudioConfig struct {
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
	Resize       bool   `yaml:"resize"`
	FFprobePath  string `yaml:"ffprobe_path"`
	FFmpegPath   string `yaml:"ffmpeg_path"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Docx bool   `yaml:"docx"`
}

type PipelineConfig struct {
	AbortOnTranscriptionError bool `yaml:"abort_on_transcription_error"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load reads the optional YAML file at path, applies environment overrides
// resolved through lookup and validates the result.
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv is Load without a config file.
func FromEnv(lookup LookupFunc) (*Config, error) {
	return Load("", lookup)
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	setString(lookup, &c.Speech.APIKey, "SPEECH_API_KEY", "ELEVENLABS_API_KEY")
	setString(lookup, &c.LLM.APIKey, "LLM_API_KEY", "GEMINI_API_KEY")
	setString(lookup, &c.LLM.Model, "LLM_MODEL", "GEMINI_MODEL")
	setString(lookup, &c.Speech.ModelID, "SPEECH_MODEL_ID", "ELEVENLABS_SCRIBE_MODEL_ID")
	setString(lookup, &c.Speech.BaseURL, "SPEECH_BASE_URL")
	setString(lookup, &c.Speech.ContentType, "SPEECH_CONTENT_TYPE")
	setString(lookup, &c.LLM.BaseURL, "LLM_BASE_URL")
	setString(lookup, &c.Output.Dir, "OUTPUT_DIR")
	setString(lookup, &c.Logging.Level, "LOG_LEVEL")

	if v, ok := lookupAny(lookup, "MAX_AUDIO_SIZE_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return &ConfigurationError{Key: "MAX_AUDIO_SIZE_BYTES", Reason: fmt.Sprintf("invalid byte count %q", v)}
		}
		c.Audio.MaxSizeBytes = n
	}

	if v, ok := lookupAny(lookup, "LLM_MAX_PARALLEL"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return &ConfigurationError{Key: "LLM_MAX_PARALLEL", Reason: fmt.Sprintf("invalid parallelism %q", v)}
		}
		c.LLM.MaxParallel = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"LLM_CONCURRENT", &c.LLM.Concurrent},
		{"AUDIO_RESIZE", &c.Audio.Resize},
		{"OUTPUT_DOCX", &c.Output.Docx},
		{"ABORT_ON_TRANSCRIPTION_ERROR", &c.Pipeline.AbortOnTranscriptionError},
	}
	for _, b := range bools {
		v, ok := lookupAny(lookup, b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigurationError{Key: b.key, Reason: fmt.Sprintf("invalid boolean %q", v)}
		}
		*b.dst = parsed
	}

	return nil
}

// Parallelism is the number of summary sections generated at once.
func (c *Config) Parallelism() int {
	if !c.LLM.Concurrent {
		return 1
	}
	return c.LLM.MaxParallel
}

// Validate checks required credentials and fills defaults.
func (c *Config) Validate() error {
	if c.Speech.APIKey == "" {
		return &ConfigurationError{Key: "SPEECH_API_KEY", Reason: "speech-to-text API key is not configured"}
	}
	if c.LLM.APIKey == "" {
		return &ConfigurationError{Key: "LLM_API_KEY", Reason: "language model API key is not configured"}
	}
	if c.Audio.MaxSizeBytes < 0 {
		return &ConfigurationError{Key: "audio.max_size_bytes", Reason: "must not be negative"}
	}

	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.MaxParallel <= 0 {
		c.LLM.MaxParallel = DefaultMaxParallel
	}
	if c.Speech.ModelID == "" {
		c.Speech.ModelID = DefaultSpeechModelID
	}
	if c.Speech.BaseURL == "" {
		c.Speech.BaseURL = DefaultSpeechBaseURL
	}
	if c.Audio.MaxSizeBytes == 0 {
		c.Audio.MaxSizeBytes = DefaultMaxAudioBytes
	}
	if c.Audio.FFprobePath == "" {
		c.Audio.FFprobePath = "ffprobe"
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func setString(lookup LookupFunc, dst *string, keys ...string) {
	if v, ok := lookupAny(lookup, keys...); ok {
		*dst = v
	}
}

// lookupAny returns the first non-empty value among keys.
func lookupAny(lookup LookupFunc, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
