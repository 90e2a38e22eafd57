package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported classifier backends
const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendGemini      = "gemini"
	BackendRandom      = "random"
)

const (
	defaultBackend  = BackendHuggingFace
	defaultModel    = "dima806/facial_emotions_image_detection"
	defaultEndpoint = "https://router.huggingface.co/hf-inference/models"
	defaultSize     = 48
	defaultTimeout  = 60 * time.Second

	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	// Inference
	Backend  string   `yaml:"backend"`
	Model    string   `yaml:"model"`
	Endpoint string   `yaml:"endpoint"`
	APIKey   string   `yaml:"api_key"`
	BaseURL  string   `yaml:"base_url"`
	Labels   []string `yaml:"labels"`

	// Vocabulary names a built-in label set used when Labels is empty
	Vocabulary string `yaml:"vocabulary"`

	// Preprocessing
	InputSize   int    `yaml:"input_size"`
	Grayscale   bool   `yaml:"grayscale"`
	FaceCrop    bool   `yaml:"face_crop"`
	FaceCascade string `yaml:"face_cascade"`

	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Diagnostics
	LogFile string `yaml:"log_file"`
	Verbose bool   `yaml:"verbose"`

	keyFromEnv bool
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Backend:        defaultBackend,
		Model:          defaultModel,
		Endpoint:       defaultEndpoint,
		APIKey:         "",
		BaseURL:        "",
		Labels:         []string{},
		InputSize:      defaultSize,
		Grayscale:      true,
		FaceCrop:       false,
		FaceCascade:    "",
		RequestTimeout: defaultTimeout,
		LogFile:        "",
		Verbose:        false,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if !IsValidBackend(cfg.Backend) {
		return nil, fmt.Errorf("unknown backend %q in %s", cfg.Backend, path)
	}

	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables already set are left alone and a missing file is
// not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides values from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("EMOBRIDGE_BACKEND"); v != "" {
		c.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("EMOBRIDGE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EMOBRIDGE_BASE_URL"); v != "" {
		c.BaseURL = v
	}

	c.applyDefaults()
	c.resolveAPIKey()
}

// SetBackend switches to another backend, e.g. from a command-line flag.
// A token picked up from the environment is looked up again for the new
// backend; a key from the config file is kept.
func (c *Config) SetBackend(name string) {
	c.Backend = strings.ToLower(strings.TrimSpace(name))
	if c.keyFromEnv {
		c.APIKey = ""
		c.keyFromEnv = false
	}
	c.applyDefaults()
	c.resolveAPIKey()
}

// resolveAPIKey fills in a key the config file left empty from the
// backend's provider token
func (c *Config) resolveAPIKey() {
	if c.APIKey != "" {
		return
	}
	for _, name := range apiKeyEnvVars(c.Backend) {
		if v := os.Getenv(name); v != "" {
			c.APIKey = v
			c.keyFromEnv = true
			return
		}
	}
}

// ModelFor returns the configured model, or the backend's default when the
// configured one is the hosted pipeline default and the backend is not.
func (c *Config) ModelFor(backend string) string {
	if c.Model != "" && c.Model != defaultModel {
		return c.Model
	}
	switch backend {
	case BackendOpenAI:
		return defaultOpenAIModel
	case BackendGemini:
		return defaultGeminiModel
	default:
		return defaultModel
	}
}

func (c *Config) applyDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = defaultBackend
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.Labels == nil {
		c.Labels = []string{}
	}
	if c.InputSize <= 0 {
		c.InputSize = defaultSize
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultTimeout
	}
}

// IsValidBackend checks if the backend name is supported
func IsValidBackend(name string) bool {
	validBackends := []string{BackendHuggingFace, BackendOpenAI, BackendGemini, BackendRandom}
	for _, valid := range validBackends {
		if name == valid {
			return true
		}
	}
	return false
}

func apiKeyEnvVars(backend string) []string {
	switch backend {
	case BackendHuggingFace:
		return []string{"HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"}
	case BackendOpenAI:
		return []string{"OPENAI_API_KEY"}
	case BackendGemini:
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	default:
		return nil
	}
}
