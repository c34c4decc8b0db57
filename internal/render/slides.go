// Package render draws a wrapped story as a sequence of terminal slides.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/01Developer95/github-wrapped/internal/domain"
)

// Renderer writes the story slides to a single destination writer.
type Renderer struct {
	out io.Writer

	title   *color.Color
	heading *color.Color
	stat    *color.Color
	muted   *color.Color
}

// New creates a Renderer targeting out.
func New(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		title:   color.New(color.FgMagenta, color.Bold),
		heading: color.New(color.FgCyan, color.Bold),
		stat:    color.New(color.FgYellow, color.Bold),
		muted:   color.New(color.FgWhite, color.Faint),
	}
}

// Story renders the full slide sequence for one summary and its narrative.
func (r *Renderer) Story(summary *domain.YearSummary, insights domain.Insights, recap string) {
	r.intro(summary)
	r.commits(summary)
	r.languages(summary)
	r.productiveTime(summary)
	r.biggestProject(summary)
	r.narrative(insights, recap)
}

func (r *Renderer) slide(title string) {
	fmt.Fprintln(r.out)
	r.title.Fprintf(r.out, "━━━ %s ━━━\n", title)
}

func (r *Renderer) intro(summary *domain.YearSummary) {
	r.slide(fmt.Sprintf("GitHub Wrapped %d", summary.Year))
	r.heading.Fprintf(r.out, "%s\n", summary.Profile.Name)
	r.muted.Fprintf(r.out, "@%s · %d followers · coding since %d\n",
		summary.Profile.Login, summary.Profile.Followers, summary.Profile.CreatedAt.Year())
}

func (r *Renderer) commits(summary *domain.YearSummary) {
	r.slide("Your Commits")
	r.stat.Fprintf(r.out, "%d commits", summary.Commits.Total)
	if summary.TotalContributions > 0 {
		r.muted.Fprintf(r.out, " (%d contributions on your calendar)", summary.TotalContributions)
	}
	fmt.Fprintln(r.out)

	busiest := 0
	for i, count := range summary.Commits.ByMonth {
		if count > summary.Commits.ByMonth[busiest] {
			busiest = i
		}
	}
	if summary.Commits.Total > 0 {
		fmt.Fprintf(r.out, "Busiest month: %s (%d commits)\n",
			time.Month(busiest+1), summary.Commits.ByMonth[busiest])
		fmt.Fprintf(r.out, "Average over active months: %.1f commits\n", summary.AvgCommitsPerMonth)
	}
}

func (r *Renderer) languages(summary *domain.YearSummary) {
	r.slide("Your Languages")
	if len(summary.Languages) == 0 {
		r.muted.Fprintln(r.out, "No language data this year.")
		return
	}
	for i, lang := range summary.Languages {
		if i == 5 {
			break
		}
		fmt.Fprintf(r.out, "%d. ", i+1)
		r.heading.Fprintf(r.out, "%-14s", lang.Name)
		fmt.Fprintf(r.out, " %5.1f%%\n", lang.Percentage)
	}
}

func (r *Renderer) productiveTime(summary *domain.YearSummary) {
	r.slide("Your Rhythm")
	pt := summary.ProductiveTime
	fmt.Fprint(r.out, "You ship most on ")
	r.stat.Fprintf(r.out, "%ss around %d:00", pt.Day, pt.Hour)
	fmt.Fprintf(r.out, ". A true %s person.\n", pt.TimeOfDay)
}

func (r *Renderer) biggestProject(summary *domain.YearSummary) {
	r.slide("Your Biggest Project")
	if summary.BiggestProject == nil {
		r.muted.Fprintln(r.out, "No repository qualified this year.")
		return
	}
	repo := summary.BiggestProject
	r.heading.Fprintf(r.out, "%s\n", repo.Name)
	if repo.Description != "" {
		r.muted.Fprintf(r.out, "%s\n", repo.Description)
	}
	fmt.Fprintf(r.out, "★ %d   ⑂ %d   %d KB\n", repo.Stars, repo.Forks, repo.SizeKB)
	fmt.Fprintf(r.out, "Across the year: %d repositories, %d stars, %d forks\n",
		summary.RepoCount, summary.TotalStars, summary.TotalForks)
}

func (r *Renderer) narrative(insights domain.Insights, recap string) {
	r.slide("Your Story")
	for _, line := range []struct{ label, text string }{
		{"Achievement", insights.Achievement},
		{"Pattern", insights.Pattern},
		{"Growth", insights.Growth},
		{"Fun fact", insights.FunFact},
		{"Motivation", insights.Motivation},
	} {
		if line.text == "" {
			continue
		}
		r.heading.Fprintf(r.out, "%s: ", line.label)
		fmt.Fprintln(r.out, line.text)
	}
	if recap != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, recap)
	}
}
