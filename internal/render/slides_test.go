package render

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/01Developer95/github-wrapped/internal/domain"
)

func TestRenderer_Story(t *testing.T) {
	color.NoColor = true // plain text for deterministic assertions
	t.Cleanup(func() { color.NoColor = false })

	summary := &domain.YearSummary{
		Profile: domain.Profile{Login: "octocat", Name: "The Octocat"},
		Year:    2023,
		Commits: domain.CommitBuckets{Total: 730},
		Languages: []domain.LanguageStat{
			{Name: "Go", Bytes: 9000, Percentage: 90.0},
			{Name: "Makefile", Bytes: 1000, Percentage: 10.0},
		},
		ProductiveTime:     domain.ProductiveTime{Day: "Monday", Hour: 9, TimeOfDay: domain.TimeOfDayMorning},
		BiggestProject:     &domain.Repository{Name: "hello", Stars: 3, Forks: 1, SizeKB: 2048},
		RepoCount:          12,
		TotalStars:         34,
		TotalForks:         5,
		AvgCommitsPerMonth: 60.8,
	}
	summary.Commits.ByMonth[6] = 730

	insights := domain.Insights{Achievement: "You crushed it.", Motivation: "Keep going."}

	var buf bytes.Buffer
	New(&buf).Story(summary, insights, "What a year!")
	out := buf.String()

	assert.Contains(t, out, "GitHub Wrapped 2023")
	assert.Contains(t, out, "The Octocat")
	assert.Contains(t, out, "730 commits")
	assert.Contains(t, out, "Busiest month: July")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "90.0%")
	assert.Contains(t, out, "Mondays around 9:00")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "You crushed it.")
	assert.Contains(t, out, "Keep going.")
	assert.Contains(t, out, "What a year!")
}

func TestRenderer_Story_EmptyYear(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	summary := &domain.YearSummary{
		Profile:        domain.Profile{Login: "octocat", Name: "octocat"},
		Year:           2023,
		ProductiveTime: domain.ProductiveTime{Day: "Sunday", Hour: 0, TimeOfDay: domain.TimeOfDayNight},
	}

	var buf bytes.Buffer
	New(&buf).Story(summary, domain.Insights{}, "")
	out := buf.String()

	assert.Contains(t, out, "No language data this year.")
	assert.Contains(t, out, "No repository qualified this year.")
}
