package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds connection settings shared by the embeddings client
// and the answer generator. The API key is read from the environment
// variable named by APIKeyEnv, never stored in the config file.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type       string `yaml:"type"`
	Model      string `yaml:"model"`
	BatchSize  int    `yaml:"batch_size"`
	Dimensions int    `yaml:"dimensions,omitempty"`
}

// ChunkerConfig configures how page text is split into word windows.
type ChunkerConfig struct {
	WindowWords   int `yaml:"window_words"`
	OverlapWords  int `yaml:"overlap_words"`
	MinChunkChars int `yaml:"min_chunk_chars"`
}

// RetrievalConfig configures query-time behavior.
type RetrievalConfig struct {
	TopK            int `yaml:"top_k"`
	MaxContextChars int `yaml:"max_context_chars"`
	TimeoutSecs     int `yaml:"timeout_secs"`
}

// AnswerConfig configures the answer-generation collaborator. Generation
// is only attempted when the OpenAI API key is present; otherwise the
// extractive fallback is used.
type AnswerConfig struct {
	Model string `yaml:"model"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DataDir   string          `yaml:"data_dir"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Answer    AnswerConfig    `yaml:"answer"`
}

// IndexPath returns the location of the persisted vector index.
func (c *AppConfig) IndexPath() string {
	return filepath.Join(c.DataDir, "index", "vectors.idx")
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/legalbot/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "legalbot", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = 60
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.BatchSize == 0 {
		cfg.Embedder.BatchSize = 32
	}
	if cfg.Chunker.WindowWords == 0 {
		cfg.Chunker.WindowWords = 500
	}
	if cfg.Chunker.OverlapWords == 0 {
		cfg.Chunker.OverlapWords = 100
	}
	if cfg.Chunker.MinChunkChars == 0 {
		cfg.Chunker.MinChunkChars = 50
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.MaxContextChars == 0 {
		cfg.Retrieval.MaxContextChars = 3000
	}
	if cfg.Retrieval.TimeoutSecs == 0 {
		cfg.Retrieval.TimeoutSecs = 120
	}
	if cfg.Answer.Model == "" {
		cfg.Answer.Model = "gpt-4o-mini"
	}
}
