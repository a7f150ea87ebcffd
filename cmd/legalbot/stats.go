package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/index"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show indexed documents and index status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Documents: %d\n", len(stats.Documents))
	cmd.Printf("Chunks:    %d\n", stats.ChunkCount)

	indexPath := cfg.IndexPath()
	if info, err := os.Stat(indexPath); err == nil && index.Exists(indexPath) {
		cmd.Printf("Index:     %s (%d bytes)\n", indexPath, info.Size())
	} else {
		cmd.Printf("Index:     missing (run `legalbot ingest <dir>`)\n")
	}

	if len(stats.Documents) > 0 {
		cmd.Println()
		for _, doc := range stats.Documents {
			cmd.Printf("  %-40s %4d page(s)  ingested %s\n",
				doc.Filename, doc.PageCount, doc.IngestedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
