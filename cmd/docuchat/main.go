// Package main provides the entry point for the document chat HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docuchat",
	Short: "Document chat HTTP API server",
	Long:  "Docuchat lets users chat with an LLM grounded in their own documents: YouTube transcripts, Google Docs and Sheets, Notion pages, PDFs and pasted text, served via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
