// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/01Developer95/github-wrapped/internal/domain"
	"github.com/01Developer95/github-wrapped/internal/gateway"
	"github.com/01Developer95/github-wrapped/internal/insight"
	"github.com/01Developer95/github-wrapped/internal/render"
	"github.com/01Developer95/github-wrapped/internal/usecase"
)

// wrappedOutput is the JSON shape handed to the presentation layer.
type wrappedOutput struct {
	Summary  *domain.YearSummary `json:"summary"`
	Insights domain.Insights     `json:"insights"`
	Recap    string              `json:"recap"`
}

var wrappedCmd = &cobra.Command{
	Use:   "wrapped",
	Short: "Builds a user's yearly GitHub summary with narrative insights",
	Long: `Aggregates commits, languages, and repositories for a GitHub user across
one calendar year, derives headline metrics, generates AI narrative insights
(with a deterministic fallback), and prints the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		user, _ := cmd.Flags().GetString("user")
		year, _ := cmd.Flags().GetInt("year")
		format, _ := cmd.Flags().GetString("format")
		if year == 0 {
			// The wrapped for a year is usually wanted after the year ended.
			year = time.Now().Year() - 1
		}
		if format != "json" && format != "story" {
			fmt.Fprintf(os.Stderr, "Invalid --format %q. Use \"json\" or \"story\".\n", format)
			os.Exit(1)
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			os.Exit(1)
		}
		geminiKey := os.Getenv("GEMINI_API_KEY")

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		if err := githubGateway.ValidateToken(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid GitHub token: %v\n", err)
			os.Exit(1)
		}

		// The Gemini key check is lenient on purpose: a failed probe only
		// warns, and generation failures degrade to the built-in narrative.
		var completer insight.Completer
		if geminiKey == "" {
			fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set; using the built-in narrative.")
		} else {
			geminiClient := insight.NewGeminiClient(geminiKey, logger)
			if !geminiClient.ValidateKey(ctx) {
				fmt.Fprintln(os.Stderr, "Gemini API key validation failed, proceeding anyway.")
			}
			completer = geminiClient
		}

		aggregator := usecase.NewAggregator(githubGateway, logger)
		summary, err := aggregator.Summarize(ctx, user, year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build year summary: %v\n", err)
			os.Exit(1)
		}

		generator := insight.NewGenerator(completer, logger)
		insights, recap := generator.Narrate(ctx, summary)

		if format == "story" {
			render.New(os.Stdout).Story(summary, insights, recap)
			return
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(wrappedOutput{Summary: summary, Insights: insights, Recap: recap}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(wrappedCmd)
	wrappedCmd.PersistentFlags().StringP("user", "u", "", "Target GitHub user name (required)")
	wrappedCmd.MarkPersistentFlagRequired("user")
	wrappedCmd.Flags().IntP("year", "y", 0, "Target year (default: previous calendar year)")
	wrappedCmd.Flags().StringP("format", "f", "json", "Output format: json or story")
}
