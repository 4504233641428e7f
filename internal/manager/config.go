package manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "jarvis.yaml"
	defaultEnvFile    = ".env"
)

// Config is the gateway's runtime configuration.
type Config struct {
	Port               int              `yaml:"port" validate:"min=1,max=65535"`
	WorkspaceBase      string           `yaml:"workspace_base" validate:"required"`
	AllowedOrigins     []string         `yaml:"allowed_origins"`
	LogFile            string           `yaml:"log_file"`
	LogStdout          bool             `yaml:"log_stdout"`
	VerboseHTTP        bool             `yaml:"verbose_http"`
	MonitorInterval    time.Duration    `yaml:"monitor_interval" validate:"gt=0"`
	RateLimitPerMinute int              `yaml:"rate_limit_per_minute" validate:"min=1"`
	RateLimitBurst     int              `yaml:"rate_limit_burst" validate:"min=1"`
	Completion         CompletionConfig `yaml:"completion"`
}

// CompletionConfig configures the external text-completion provider. An
// empty APIKey puts content generation into demo mode.
type CompletionConfig struct {
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model" validate:"required"`
	MaxTokens      int     `yaml:"max_tokens" validate:"min=1"`
	InputPerMTok   float64 `yaml:"input_cost_per_mtok" validate:"gte=0"`
	OutputPerMTok  float64 `yaml:"output_cost_per_mtok" validate:"gte=0"`
	DefaultModelID string  `yaml:"default_model_id"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Port:               8000,
		WorkspaceBase:      "/Volumes/AI_WORKSPACE",
		AllowedOrigins:     []string{"*"},
		LogStdout:          true,
		MonitorInterval:    5 * time.Second,
		RateLimitPerMinute: 600,
		RateLimitBurst:     150,
		Completion: CompletionConfig{
			Model:          "claude-sonnet-4-5",
			MaxTokens:      2048,
			InputPerMTok:   3.0,
			OutputPerMTok:  15.0,
			DefaultModelID: "claude",
		},
	}
}

// Demo reports whether no completion credential is configured.
func (c CompletionConfig) Demo() bool {
	return strings.TrimSpace(c.APIKey) == ""
}

// LoadConfig layers defaults, the YAML file, a .env file and environment
// variables, then validates the result. path may be empty; JARVIS_CONFIG and
// then ./jarvis.yaml are tried. Only an explicitly named file must exist.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, defaultEnvFile)
}

func loadConfig(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := true
	if strings.TrimSpace(path) == "" {
		path = os.Getenv("JARVIS_CONFIG")
	}
	if strings.TrimSpace(path) == "" {
		path = defaultConfigFile
		explicit = false
	}
	if err := cfg.loadYAML(path, explicit); err != nil {
		return nil, err
	}

	if envFile != "" {
		// Existing environment wins over .env entries.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("WORKSPACE_BASE")); v != "" {
		c.WorkspaceBase = v
	}
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		c.Completion.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("JARVIS_COMPLETION_MODEL")); v != "" {
		c.Completion.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("JARVIS_LOG_FILE")); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("JARVIS_VERBOSE_HTTP")); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid JARVIS_VERBOSE_HTTP %q: %w", v, err)
		}
		c.VerboseHTTP = verbose
	}
	return nil
}

// Validate checks ranges on the loaded settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
