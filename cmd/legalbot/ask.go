package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question using the indexed documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := newQAService(store)
	if err != nil {
		return err
	}

	ans, err := svc.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	cmd.Println(ans.Text)
	if len(ans.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range ans.Sources {
			cmd.Printf("  [%d] %s, page %d (distance %.4f)\n",
				src.Rank, src.Document.Title, src.Chunk.Page, src.Distance)
		}
	}
	return nil
}
