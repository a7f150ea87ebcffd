package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/chunker"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/extract"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/ingest"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/summarizer"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Extract, chunk, embed and index all documents in a directory",
	Long: `Runs a full ingestion pass: extracts text from every supported document
(.pdf, .txt, .md), splits it into overlapping word windows, embeds the
chunks and rebuilds the vector index from scratch. The previous index is
replaced atomically on success and left untouched on failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	emb, err := newEmbedder()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ch := chunker.NewWordChunker(cfg.Chunker.WindowWords, cfg.Chunker.OverlapWords, cfg.Chunker.MinChunkChars)
	pipeline := ingest.New(extract.NewRegistry(), ch, emb, store, summarizer.NewFrequencySummarizer(), cfg.IndexPath())

	report, err := pipeline.Run(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCorpus) {
			cmd.Println("Nothing to index:", err)
			return nil
		}
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %d document(s) into %d chunk(s) (dimension %d)\n",
		report.Documents, report.Chunks, report.Dimension)
	cmd.Printf("Index written to %s\n", report.IndexPath)
	if report.Summary != "" {
		cmd.Println()
		cmd.Println("Corpus summary:", report.Summary)
	}
	return nil
}
