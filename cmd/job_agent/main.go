// Package main provides the entry point for the job agent HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_agent",
	Short: "Job-search assistant HTTP API server",
	Long:  "Job agent searches job portals for a candidate profile, ranks the postings, enriches them with recruiter contacts and drafts outreach emails via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
