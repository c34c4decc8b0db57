// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-wrapped",
	Short: "A CLI tool that builds a developer's coding year in review.",
	Long: `github-wrapped aggregates a GitHub user's yearly activity (commits,
languages, repositories), derives headline metrics, adds AI-generated
narrative insights, and outputs the result as JSON or terminal story slides.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Credentials may live in a local .env file instead of the environment.
	cobra.OnInitialize(func() { _ = godotenv.Load() })

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
