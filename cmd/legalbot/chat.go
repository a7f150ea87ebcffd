package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Shubham-Pote/Legal-Chatbot/internal/index"
	"github.com/Shubham-Pote/Legal-Chatbot/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat over the indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := newQAService(store)
	if err != nil {
		return err
	}

	banner := "Ready. Type a question and press Enter."
	if !index.Exists(cfg.IndexPath()) {
		banner = "No index found; answers will not use retrieval. Run `legalbot ingest <dir>` first."
	}

	model := tui.New(svc, banner)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
