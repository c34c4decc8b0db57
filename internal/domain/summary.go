// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Profile holds the public profile of the user the wrapped is built for.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Company     string    `json:"company,omitempty"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository is a normalized GitHub repository. Identity is FullName;
// instances are never mutated after they are fetched.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	SizeKB      int       `json:"size_kb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
	IsPrivate   bool      `json:"is_private"`
	IsFork      bool      `json:"is_fork"`
}

// CommitBuckets counts a year's commits along three calendar dimensions.
// Each commit increments exactly one slot per dimension, so Total equals
// the sum of every dimension.
type CommitBuckets struct {
	Total   int     `json:"total"`
	ByMonth [12]int `json:"by_month"`
	ByDay   [7]int  `json:"by_day"` // 0 = Sunday
	ByHour  [24]int `json:"by_hour"`
}

// LanguageStat is the accumulated byte count for one language across the
// repositories touched in the target year.
type LanguageStat struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percentage float64 `json:"percentage"` // share of the year total, one decimal place
}

// ProductiveTime names the day of week and hour with the most commits.
type ProductiveTime struct {
	Day       string `json:"day"`
	Hour      int    `json:"hour"`
	TimeOfDay string `json:"time_of_day"`
}

// Insights are the five labeled narrative strings shown on the story slides.
type Insights struct {
	Achievement string `json:"achievement"`
	Pattern     string `json:"pattern"`
	Growth      string `json:"growth"`
	FunFact     string `json:"fun_fact"`
	Motivation  string `json:"motivation"`
}

// YearSummary is the root aggregate: one user's activity for one calendar
// year. It is assembled once per request and read-only afterwards.
type YearSummary struct {
	Profile            Profile        `json:"profile"`
	Year               int            `json:"year"`
	Commits            CommitBuckets  `json:"commits"`
	Languages          []LanguageStat `json:"languages"`
	ProductiveTime     ProductiveTime `json:"productive_time"`
	BiggestProject     *Repository    `json:"biggest_project,omitempty"`
	RepoCount          int            `json:"repo_count"`
	TotalStars         int            `json:"total_stars"`
	TotalForks         int            `json:"total_forks"`
	TotalContributions int            `json:"total_contributions"`
	AvgCommitsPerMonth float64        `json:"avg_commits_per_active_month"`
}

// TopLanguage returns the name of the most-used language, or empty when no
// language data was collected.
func (s *YearSummary) TopLanguage() string {
	if len(s.Languages) == 0 {
		return ""
	}
	return s.Languages[0].Name
}

// DayNames maps time.Weekday indexes to display names.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	TimeOfDayMorning   = "Morning"
	TimeOfDayAfternoon = "Afternoon"
	TimeOfDayEvening   = "Evening"
	TimeOfDayNight     = "Night"
)

// TimeOfDay maps an hour of day to a coarse label. Total over [0,23].
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}
