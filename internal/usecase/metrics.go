package usecase

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/01Developer95/github-wrapped/internal/domain"
)

// mostProductiveTime picks the dominant day of week and hour from the commit
// buckets. Ties resolve to the lowest index.
func mostProductiveTime(commits domain.CommitBuckets) domain.ProductiveTime {
	hour := firstMaxIndex(commits.ByHour[:])
	return domain.ProductiveTime{
		Day:       domain.DayNames[firstMaxIndex(commits.ByDay[:])],
		Hour:      hour,
		TimeOfDay: domain.TimeOfDay(hour),
	}
}

// firstMaxIndex returns the lowest index holding the maximum count.
func firstMaxIndex(counts []int) int {
	data := make(stats.Float64Data, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}
	max, err := stats.Max(data)
	if err != nil {
		return 0
	}
	for i, v := range data {
		if v == max {
			return i
		}
	}
	return 0
}

// averageCommitsPerActiveMonth is the mean commit count over the months that
// saw at least one commit, rounded to one decimal place.
func averageCommitsPerActiveMonth(commits domain.CommitBuckets) float64 {
	var active stats.Float64Data
	for _, count := range commits.ByMonth {
		if count > 0 {
			active = append(active, float64(count))
		}
	}
	if len(active) == 0 {
		return 0
	}
	mean, err := stats.Mean(active)
	if err != nil {
		return 0
	}
	return roundOneDecimal(mean)
}

// projectScore weighs a repository by engagement and size.
func projectScore(repo domain.Repository) float64 {
	return float64(repo.Stars)*10 + float64(repo.Forks)*5 + float64(repo.SizeKB)/1000
}

// biggestProject returns the highest-scoring repository created or updated in
// the target year, or nil when none qualifies. The sort is stable, so equal
// scores keep their original list order.
func biggestProject(repos []domain.Repository, year int) *domain.Repository {
	qualified := qualifyingRepositories(repos, year)
	if len(qualified) == 0 {
		return nil
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return projectScore(qualified[i]) > projectScore(qualified[j])
	})
	top := qualified[0]
	return &top
}

// qualifiesForYear reports whether a repository was created or last updated
// in the given year.
func qualifiesForYear(repo domain.Repository, year int) bool {
	return repo.CreatedAt.Year() == year || repo.UpdatedAt.Year() == year
}

// qualifyingRepositories copies the repositories that qualify for the year,
// preserving list order.
func qualifyingRepositories(repos []domain.Repository, year int) []domain.Repository {
	var qualified []domain.Repository
	for _, repo := range repos {
		if qualifiesForYear(repo, year) {
			qualified = append(qualified, repo)
		}
	}
	return qualified
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
