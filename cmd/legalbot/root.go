package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/answer"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/assemble"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/config"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding/hashing"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/embedding/openai"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/logger"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/retriever"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/service"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/store/sqlite"
)

var (
	cfgPath     string
	verboseFlag bool
	cfg         *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "legalbot",
	Short: "Index legal documents and answer questions against them",
	Long: `legalbot ingests a directory of legal documents into a vector index
and answers free-text questions by retrieving the most relevant passages.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		logger.SetVerbose(verboseFlag)
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
		} else {
			cfg, _, err = config.LoadDefault()
		}
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging to stderr")
}

// newEmbedder builds the configured embedder implementation.
func newEmbedder() (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "openai", "":
		return openai.NewClient(openai.Config{
			APIKeyEnv:  cfg.OpenAI.APIKeyEnv,
			BaseURL:    cfg.OpenAI.BaseURL,
			Model:      cfg.Embedder.Model,
			BatchSize:  cfg.Embedder.BatchSize,
			Dimensions: cfg.Embedder.Dimensions,
			Timeout:    time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
		})
	case "hashing":
		return hashing.NewEmbedder(cfg.Embedder.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedder type: %s", cfg.Embedder.Type)
	}
}

func openStore() (*sqlite.Store, error) {
	return sqlite.Open(cfg.DataDir)
}

// newQAService assembles the query-side pipeline. The generator is
// optional: without an API key the service answers extractively.
func newQAService(store *sqlite.Store) (*service.QAService, error) {
	emb, err := newEmbedder()
	if err != nil {
		return nil, err
	}
	engine := retriever.New(emb, store, cfg.IndexPath())
	assembler := assemble.New(cfg.Retrieval.MaxContextChars)

	var generator *answer.Client
	generator, err = answer.NewClient(answer.Config{
		APIKeyEnv: cfg.OpenAI.APIKeyEnv,
		BaseURL:   cfg.OpenAI.BaseURL,
		Model:     cfg.Answer.Model,
		Timeout:   time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Infof("answer generation disabled: %v", err)
		generator = nil
	}

	timeout := time.Duration(cfg.Retrieval.TimeoutSecs) * time.Second
	return service.NewQAService(engine, assembler, generator, cfg.Retrieval.TopK, timeout), nil
}
