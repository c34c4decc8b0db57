// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/01Developer95/github-wrapped/internal/domain"
	"github.com/01Developer95/github-wrapped/internal/gateway"
)

// runCache holds the fetch results shared across one aggregation run.
// A fresh instance is created per Summarize call and discarded with it, so
// two concurrent runs never share state.
type runCache struct {
	profile  *domain.Profile
	repos    []domain.Repository
	hasRepos bool
}

// Aggregator is the use case for building a yearly activity summary.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Summarize builds the complete YearSummary for one user and year.
// The profile fetch and the repository listing are required steps; a failure
// in either aborts the whole run. Per-repository commit and language fetch
// failures only reduce the totals.
func (a *Aggregator) Summarize(ctx context.Context, user string, year int) (*domain.YearSummary, error) {
	a.logger.Printf("Usecase: building %d summary for %s...", year, user)
	cache := &runCache{}

	profile, err := a.profile(ctx, cache, user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	repos, err := a.repositories(ctx, cache, user)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	since, until := yearWindow(year)
	commits := a.yearCommits(ctx, user, repos, since, until)
	languages := a.yearLanguages(ctx, repos, year)

	contributions, err := a.fetcher.FetchTotalContributions(ctx, user, since, until)
	if err != nil {
		a.logger.Printf("warn: could not fetch contribution calendar: %v", err)
		contributions = 0
	}

	yearRepos := qualifyingRepositories(repos, year)
	totalStars, totalForks := 0, 0
	for _, repo := range yearRepos {
		totalStars += repo.Stars
		totalForks += repo.Forks
	}

	summary := &domain.YearSummary{
		Profile:            *profile,
		Year:               year,
		Commits:            commits,
		Languages:          languages,
		ProductiveTime:     mostProductiveTime(commits),
		BiggestProject:     biggestProject(repos, year),
		RepoCount:          len(yearRepos),
		TotalStars:         totalStars,
		TotalForks:         totalForks,
		TotalContributions: contributions,
		AvgCommitsPerMonth: averageCommitsPerActiveMonth(commits),
	}
	a.logger.Println("Usecase: summary assembly complete.")
	return summary, nil
}

func (a *Aggregator) profile(ctx context.Context, cache *runCache, user string) (*domain.Profile, error) {
	if cache.profile != nil {
		return cache.profile, nil
	}
	profile, err := a.fetcher.FetchProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	cache.profile = profile
	return profile, nil
}

func (a *Aggregator) repositories(ctx context.Context, cache *runCache, user string) ([]domain.Repository, error) {
	if cache.hasRepos {
		return cache.repos, nil
	}
	repos, err := a.fetcher.FetchRepositories(ctx, user)
	if err != nil {
		return nil, err
	}
	cache.repos = repos
	cache.hasRepos = true
	return repos, nil
}

// yearCommits buckets every commit authored by user within the window.
// Repositories are visited one at a time to stay inside the shared rate
// limit budget, and a failing repository is skipped rather than fatal.
func (a *Aggregator) yearCommits(ctx context.Context, user string, repos []domain.Repository, since, until time.Time) domain.CommitBuckets {
	var buckets domain.CommitBuckets
	for _, repo := range repos {
		if ctx.Err() != nil {
			a.logger.Println("warn: commit aggregation stopped early, returning partial buckets")
			break
		}
		timestamps, err := a.fetcher.FetchRepositoryCommits(ctx, repo.FullName, user, since, until)
		if err != nil {
			a.logger.Printf("warn: could not fetch commits for %s: %v", repo.Name, err)
			continue
		}
		for _, ts := range timestamps {
			ts = ts.UTC()
			buckets.Total++
			buckets.ByMonth[int(ts.Month())-1]++
			buckets.ByDay[int(ts.Weekday())]++
			buckets.ByHour[ts.Hour()]++
		}
	}
	return buckets
}

// yearLanguages sums language byte counts over the repositories last updated
// in the target year and converts them to sorted percentage stats.
func (a *Aggregator) yearLanguages(ctx context.Context, repos []domain.Repository, year int) []domain.LanguageStat {
	byLanguage := make(map[string]int64)
	for _, repo := range repos {
		if repo.UpdatedAt.Year() != year {
			continue
		}
		if ctx.Err() != nil {
			a.logger.Println("warn: language aggregation stopped early, returning partial stats")
			break
		}
		languages, err := a.fetcher.FetchLanguages(ctx, repo.FullName)
		if err != nil {
			a.logger.Printf("warn: could not fetch languages for %s: %v", repo.Name, err)
			continue
		}
		for lang, bytes := range languages {
			byLanguage[lang] += bytes
		}
	}
	return languageStats(byLanguage)
}

// languageStats converts accumulated byte counts into percentage stats,
// sorted descending by raw byte count so that rounding cannot reorder
// entries. Equal byte counts fall back to name order for determinism.
func languageStats(byLanguage map[string]int64) []domain.LanguageStat {
	var total int64
	for _, bytes := range byLanguage {
		total += bytes
	}

	stats := make([]domain.LanguageStat, 0, len(byLanguage))
	for lang, bytes := range byLanguage {
		stat := domain.LanguageStat{Name: lang, Bytes: bytes}
		if total > 0 {
			stat.Percentage = roundOneDecimal(float64(bytes) / float64(total) * 100)
		}
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bytes != stats[j].Bytes {
			return stats[i].Bytes > stats[j].Bytes
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// yearWindow returns the inclusive UTC range covering one calendar year.
func yearWindow(year int) (time.Time, time.Time) {
	since := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return since, until
}
