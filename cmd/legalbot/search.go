package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Retrieve the most relevant document passages for a query",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := newQAService(store)
	if err != nil {
		return err
	}

	results, err := svc.Search(cmd.Context(), args[0], searchTopK)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			return fmt.Errorf("no index found; run `legalbot ingest <dir>` first")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	outputTable(cmd, results)
	return nil
}

func outputJSON(cmd *cobra.Command, results []domain.RetrievalResult) error {
	type row struct {
		Rank     int     `json:"rank"`
		Document string  `json:"document"`
		Title    string  `json:"title"`
		Page     int     `json:"page"`
		Text     string  `json:"text"`
		Score    float64 `json:"score"`
	}
	rows := make([]row, len(results))
	for i, r := range results {
		rows[i] = row{
			Rank:     r.Rank,
			Document: r.Document.Filename,
			Title:    r.Document.Title,
			Page:     r.Chunk.Page,
			Text:     r.Chunk.Text,
			Score:    r.Distance,
		}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func outputTable(cmd *cobra.Command, results []domain.RetrievalResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}
	for _, r := range results {
		cmd.Printf("[%d] %s, page %d (distance %.4f)\n", r.Rank, r.Document.Title, r.Chunk.Page, r.Distance)
		cmd.Printf("    %s\n\n", snippet(r.Chunk.Text, 200))
	}
}

func snippet(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
