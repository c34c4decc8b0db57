package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01Developer95/github-wrapped/internal/domain"
)

func TestFirstMaxIndex(t *testing.T) {
	testCases := []struct {
		name     string
		counts   []int
		expected int
	}{
		{name: "single maximum", counts: []int{1, 5, 2}, expected: 1},
		{name: "tie resolves to lowest index", counts: []int{0, 4, 4, 4}, expected: 1},
		{name: "all zero", counts: []int{0, 0, 0}, expected: 0},
		{name: "maximum at the end", counts: []int{1, 2, 9}, expected: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, firstMaxIndex(tc.counts))
		})
	}
}

func TestMostProductiveTime(t *testing.T) {
	var buckets domain.CommitBuckets
	buckets.ByDay[1] = 7  // Monday
	buckets.ByDay[5] = 7  // Friday ties, Monday wins
	buckets.ByHour[9] = 4 // 9:00 is Morning

	pt := mostProductiveTime(buckets)
	assert.Equal(t, "Monday", pt.Day)
	assert.Equal(t, 9, pt.Hour)
	assert.Equal(t, domain.TimeOfDayMorning, pt.TimeOfDay)
}

func TestMostProductiveTime_EmptyBuckets(t *testing.T) {
	pt := mostProductiveTime(domain.CommitBuckets{})
	assert.Equal(t, "Sunday", pt.Day)
	assert.Equal(t, 0, pt.Hour)
	assert.Equal(t, domain.TimeOfDayNight, pt.TimeOfDay)
	assert.GreaterOrEqual(t, pt.Hour, 0)
	assert.LessOrEqual(t, pt.Hour, 23)
}

func TestProjectScore(t *testing.T) {
	repo := domain.Repository{Stars: 2, Forks: 3, SizeKB: 4000}
	assert.InDelta(t, 2*10+3*5+4.0, projectScore(repo), 0.001)
}

func yearRepo(name string, stars, forks, sizeKB, createdYear, updatedYear int) domain.Repository {
	return domain.Repository{
		Name:      name,
		FullName:  "octocat/" + name,
		Stars:     stars,
		Forks:     forks,
		SizeKB:    sizeKB,
		CreatedAt: time.Date(createdYear, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(updatedYear, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBiggestProject(t *testing.T) {
	testCases := []struct {
		name     string
		repos    []domain.Repository
		expected string // empty means nil result
	}{
		{
			name: "highest score wins",
			repos: []domain.Repository{
				yearRepo("small", 1, 0, 100, 2023, 2023),
				yearRepo("big", 50, 10, 100, 2023, 2023),
			},
			expected: "big",
		},
		{
			name: "tie keeps original list order",
			repos: []domain.Repository{
				yearRepo("first", 5, 0, 0, 2023, 2023),
				yearRepo("second", 5, 0, 0, 2023, 2023),
			},
			expected: "first",
		},
		{
			name: "repositories outside the year do not qualify",
			repos: []domain.Repository{
				yearRepo("old-giant", 999, 999, 99999, 2019, 2020),
				yearRepo("modest", 1, 0, 10, 2023, 2023),
			},
			expected: "modest",
		},
		{
			name:     "no qualifying repository returns nil",
			repos:    []domain.Repository{yearRepo("old", 1, 1, 1, 2019, 2020)},
			expected: "",
		},
		{
			name:     "empty list returns nil",
			repos:    nil,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := biggestProject(tc.repos, 2023)
			if tc.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, got.Name)
		})
	}
}

func TestBiggestProject_DeterministicAcrossRuns(t *testing.T) {
	repos := []domain.Repository{
		yearRepo("a", 3, 1, 500, 2023, 2023),
		yearRepo("b", 2, 3, 900, 2023, 2023),
		yearRepo("c", 3, 1, 500, 2023, 2023), // same score as a
	}

	first := biggestProject(repos, 2023)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		again := biggestProject(repos, 2023)
		require.NotNil(t, again)
		assert.Equal(t, first.Name, again.Name)
	}
	// The input order must survive the stable sort.
	assert.Equal(t, "a", repos[0].Name)
	assert.Equal(t, "b", repos[1].Name)
	assert.Equal(t, "c", repos[2].Name)
}

func TestQualifiesForYear_Symmetry(t *testing.T) {
	// Created in Y but updated in Y+1 still qualifies for Y, and vice versa.
	createdOnly := yearRepo("created-only", 0, 0, 0, 2023, 2024)
	updatedOnly := yearRepo("updated-only", 0, 0, 0, 2022, 2023)
	neither := yearRepo("neither", 0, 0, 0, 2021, 2022)

	assert.True(t, qualifiesForYear(createdOnly, 2023))
	assert.True(t, qualifiesForYear(updatedOnly, 2023))
	assert.False(t, qualifiesForYear(neither, 2023))
}

func TestLanguageStats(t *testing.T) {
	stats := languageStats(map[string]int64{
		"Go":         70000,
		"TypeScript": 20000,
		"Makefile":   10000,
	})

	require.Len(t, stats, 3)
	// Strictly descending by raw byte count.
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].Bytes, stats[i].Bytes)
	}
	assert.Equal(t, "Go", stats[0].Name)
	assert.InDelta(t, 70.0, stats[0].Percentage, 0.01)

	// Percentage sum stays within 1.0 of 100 for non-empty input.
	var sum float64
	for _, stat := range stats {
		sum += stat.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1.0)
}

func TestLanguageStats_RoundingKeepsByteOrder(t *testing.T) {
	// Two languages that round to the same percentage must still be ordered
	// by raw byte count.
	stats := languageStats(map[string]int64{
		"A": 333334,
		"B": 333333,
		"C": 333333,
	})
	require.Len(t, stats, 3)
	assert.Equal(t, "A", stats[0].Name)
	// Equal byte counts are ordered by name for determinism.
	assert.Equal(t, "B", stats[1].Name)
	assert.Equal(t, "C", stats[2].Name)
}

func TestLanguageStats_Empty(t *testing.T) {
	assert.Empty(t, languageStats(map[string]int64{}))
}

func TestAverageCommitsPerActiveMonth(t *testing.T) {
	var buckets domain.CommitBuckets
	buckets.ByMonth[0] = 10
	buckets.ByMonth[3] = 20
	buckets.Total = 30

	assert.InDelta(t, 15.0, averageCommitsPerActiveMonth(buckets), 0.001)
	assert.Zero(t, averageCommitsPerActiveMonth(domain.CommitBuckets{}))
}

func TestYearWindow(t *testing.T) {
	since, until := yearWindow(2023)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), since)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), until)
}
