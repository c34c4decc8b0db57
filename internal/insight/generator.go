package insight

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/01Developer95/github-wrapped/internal/domain"
)

// The five labels the completion is asked to emit, scanned line by line.
const (
	labelAchievement = "ACHIEVEMENT:"
	labelPattern     = "PATTERN:"
	labelGrowth      = "GROWTH:"
	labelFunFact     = "FUN_FACT:"
	labelMotivation  = "MOTIVATION:"
)

var insightConfig = GenerationConfig{
	Temperature:     0.9,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

var recapConfig = GenerationConfig{
	Temperature:     0.8,
	MaxOutputTokens: 200,
}

// Generator produces the five labeled insights and the short recap for a
// summary. A nil completer means the deterministic fallback is always used.
type Generator struct {
	completer Completer
	logger    *log.Logger
}

// NewGenerator creates a new Generator instance.
func NewGenerator(completer Completer, logger *log.Logger) *Generator {
	return &Generator{
		completer: completer,
		logger:    logger,
	}
}

// Narrate generates the insights and the recap for one summary. The two
// completion calls run concurrently; each one falls back independently, so
// Narrate never fails for a well-formed summary.
func (g *Generator) Narrate(ctx context.Context, summary *domain.YearSummary) (domain.Insights, string) {
	var insights domain.Insights
	var recap string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		insights = g.Insights(egCtx, summary)
		return nil
	})
	eg.Go(func() error {
		recap = g.Recap(egCtx, summary)
		return nil
	})
	_ = eg.Wait()

	return insights, recap
}

// Insights asks the completer for the five labeled insights, falling back to
// templated text on any failure.
func (g *Generator) Insights(ctx context.Context, summary *domain.YearSummary) domain.Insights {
	if g.completer == nil {
		return FallbackInsights(summary)
	}
	text, err := g.completer.Complete(ctx, insightPrompt(summary), insightConfig)
	if err != nil {
		g.logger.Printf("warn: insight generation failed, using fallback: %v", err)
		return FallbackInsights(summary)
	}
	return parseInsights(text)
}

// Recap asks the completer for the short prose recap, falling back to
// templated text on any failure.
func (g *Generator) Recap(ctx context.Context, summary *domain.YearSummary) string {
	if g.completer == nil {
		return FallbackRecap(summary)
	}
	text, err := g.completer.Complete(ctx, recapPrompt(summary), recapConfig)
	if err != nil {
		g.logger.Printf("warn: recap generation failed, using fallback: %v", err)
		return FallbackRecap(summary)
	}
	return text
}

func insightPrompt(summary *domain.YearSummary) string {
	topLanguages := make([]string, 0, 5)
	for _, lang := range summary.Languages {
		topLanguages = append(topLanguages, lang.Name)
		if len(topLanguages) == 5 {
			break
		}
	}
	productiveTime := fmt.Sprintf("%ss at %d:00 (%s)",
		summary.ProductiveTime.Day, summary.ProductiveTime.Hour, summary.ProductiveTime.TimeOfDay)
	biggestProject := "N/A"
	if summary.BiggestProject != nil {
		biggestProject = summary.BiggestProject.Name
	}
	name := summary.Profile.Name
	if name == "" {
		name = "Developer"
	}

	return fmt.Sprintf(`You are analyzing a developer's GitHub activity for the year %d. Generate personalized, encouraging, and fun insights about their coding journey.

Developer Stats:
- Total Commits: %d
- Repositories: %d
- Top Languages: %s
- Most Productive Time: %s
- Biggest Project: %s
- Total Stars Earned: %d
- Profile: %s

Generate exactly 5 insights in the following format. Each insight should be unique, personal, and celebratory:

1. ACHIEVEMENT: [A specific achievement based on their stats - be creative and encouraging]
2. PATTERN: [An interesting pattern you notice in their coding behavior]
3. GROWTH: [How they've grown or what they've accomplished this year]
4. FUN_FACT: [A fun, quirky observation about their coding style or habits]
5. MOTIVATION: [An inspiring message for their future coding journey]

Keep each insight to 1-2 sentences. Be enthusiastic, personal, and avoid generic statements. Make it feel like Spotify Wrapped - exciting and shareable!`,
		summary.Year, summary.Commits.Total, summary.RepoCount, strings.Join(topLanguages, ", "),
		productiveTime, biggestProject, summary.TotalStars, name)
}

func recapPrompt(summary *domain.YearSummary) string {
	topLanguage := summary.TopLanguage()
	if topLanguage == "" {
		topLanguage = "various languages"
	}
	return fmt.Sprintf(`Create a brief, exciting summary (2-3 sentences) of this developer's %d coding journey:

- %d commits
- %d repositories
- Top language: %s
- %d stars earned

Make it celebratory and personal, like Spotify Wrapped. Focus on their achievements and growth.`,
		summary.Year, summary.Commits.Total, summary.RepoCount, topLanguage, summary.TotalStars)
}

// parseInsights scans the completion line by line for the five labels.
// A label that never appears simply leaves its field empty.
func parseInsights(text string) domain.Insights {
	var insights domain.Insights
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, labelAchievement):
			insights.Achievement = afterLabel(line, labelAchievement)
		case strings.Contains(line, labelPattern):
			insights.Pattern = afterLabel(line, labelPattern)
		case strings.Contains(line, labelGrowth):
			insights.Growth = afterLabel(line, labelGrowth)
		case strings.Contains(line, labelFunFact):
			insights.FunFact = afterLabel(line, labelFunFact)
		case strings.Contains(line, labelMotivation):
			insights.Motivation = afterLabel(line, labelMotivation)
		}
	}
	return insights
}

func afterLabel(line, label string) string {
	_, rest, _ := strings.Cut(line, label)
	return strings.TrimSpace(rest)
}

// FallbackInsights computes the deterministic templated insights from the
// summary alone. It never fails for a well-formed summary.
func FallbackInsights(summary *domain.YearSummary) domain.Insights {
	commitCount := summary.Commits.Total
	topLanguage := summary.TopLanguage()
	if topLanguage == "" {
		topLanguage = "code"
	}
	perDay := int(math.Round(float64(commitCount) / 365))

	return domain.Insights{
		Achievement: fmt.Sprintf("You made %d commits in %d! That's %d commits per day on average. Your dedication is impressive! 🚀",
			commitCount, summary.Year, perDay),
		Pattern: fmt.Sprintf("You're a %s coder! Most of your commits happen on %ss around %d:00. ⏰",
			strings.ToLower(summary.ProductiveTime.TimeOfDay), summary.ProductiveTime.Day, summary.ProductiveTime.Hour),
		Growth: fmt.Sprintf("You worked on %d repositories this year, with %s being your language of choice. You're building an impressive portfolio! 📈",
			summary.RepoCount, topLanguage),
		FunFact: fmt.Sprintf("Your code traveled through %d different programming languages this year. You're a true polyglot developer! 🌍",
			len(summary.Languages)),
		Motivation: fmt.Sprintf("With %d stars earned and %d commits made, you're making waves in the developer community. Keep pushing boundaries in %d! ⭐",
			summary.TotalStars, commitCount, summary.Year+1),
	}
}

// FallbackRecap computes the deterministic templated recap.
func FallbackRecap(summary *domain.YearSummary) string {
	topLanguage := summary.TopLanguage()
	if topLanguage == "" {
		topLanguage = "various languages"
	}
	return fmt.Sprintf("What a year! You made %d commits across %d repositories, primarily using %s. Your dedication earned you %d stars from the community. Here's to an even more amazing %d! 🎉",
		summary.Commits.Total, summary.RepoCount, topLanguage, summary.TotalStars, summary.Year+1)
}
