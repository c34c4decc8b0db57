// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/01Developer95/github-wrapped/internal/domain"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

const repoPageSize = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ValidateToken(ctx context.Context) error
	FetchProfile(ctx context.Context, user string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error)
	// FetchRepositoryCommits returns the author timestamps of up to one page
	// of commits authored by author within [since, until].
	FetchRepositoryCommits(ctx context.Context, fullName, author string, since, until time.Time) ([]time.Time, error)
	FetchLanguages(ctx context.Context, fullName string) (map[string]int64, error)
	FetchTotalContributions(ctx context.Context, user string, from, to time.Time) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	backoff       time.Duration
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		backoff:       backoffUnit,
	}, nil
}

// ValidateToken checks that the configured token can authenticate at all.
func (g *GitHubGateway) ValidateToken(ctx context.Context) error {
	return g.withRetry(ctx, "validate token", func() (*github.Response, error) {
		_, resp, err := g.restClient.Users.Get(ctx, "")
		return resp, err
	})
}

// FetchProfile retrieves the public profile for user.
func (g *GitHubGateway) FetchProfile(ctx context.Context, user string) (*domain.Profile, error) {
	g.logger.Printf("Fetching profile for %s...", user)
	var raw *github.User
	err := g.withRetry(ctx, "fetch profile", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		raw, resp, err = g.restClient.Users.Get(ctx, user)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Login:       raw.GetLogin(),
		Name:        raw.GetName(),
		AvatarURL:   raw.GetAvatarURL(),
		Bio:         raw.GetBio(),
		Location:    raw.GetLocation(),
		Company:     raw.GetCompany(),
		PublicRepos: raw.GetPublicRepos(),
		Followers:   raw.GetFollowers(),
		Following:   raw.GetFollowing(),
		CreatedAt:   raw.GetCreatedAt().Time,
	}
	if profile.Name == "" {
		profile.Name = user
	}
	return profile, nil
}

// FetchRepositories pages through every repository owned by user, most
// recently updated first, until a short or empty page signals the end.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	g.logger.Printf("Fetching repositories for %s...", user)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: repoPageSize, Page: 1},
	}

	var all []domain.Repository
	for {
		var page []*github.Repository
		err := g.withRetry(ctx, "list repositories", func() (*github.Response, error) {
			var resp *github.Response
			var err error
			page, resp, err = g.restClient.Repositories.ListByUser(ctx, user, opts)
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range page {
			all = append(all, normalizeRepository(raw))
		}
		if len(page) < repoPageSize {
			break
		}
		opts.Page++
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Completed fetching %d repositories.", len(all))
	return all, nil
}

func normalizeRepository(raw *github.Repository) domain.Repository {
	return domain.Repository{
		Name:        raw.GetName(),
		FullName:    raw.GetFullName(),
		Description: raw.GetDescription(),
		Language:    raw.GetLanguage(),
		Stars:       raw.GetStargazersCount(),
		Forks:       raw.GetForksCount(),
		SizeKB:      raw.GetSize(),
		CreatedAt:   raw.GetCreatedAt().Time,
		UpdatedAt:   raw.GetUpdatedAt().Time,
		URL:         raw.GetHTMLURL(),
		IsPrivate:   raw.GetPrivate(),
		IsFork:      raw.GetFork(),
	}
}

// FetchRepositoryCommits fetches a single page of up to 100 commits authored
// by author in the given window. Deliberately does not follow pagination:
// very active repositories are undercounted in exchange for a bounded number
// of API calls per repository.
func (g *GitHubGateway) FetchRepositoryCommits(ctx context.Context, fullName, author string, since, until time.Time) ([]time.Time, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repository full name %q", fullName)
	}

	opts := &github.CommitsListOptions{
		Author:      author,
		Since:       since,
		Until:       until,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var page []*github.RepositoryCommit
	err := g.withRetry(ctx, "list commits", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		page, resp, err = g.restClient.Repositories.ListCommits(ctx, owner, name, opts)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	timestamps := make([]time.Time, 0, len(page))
	for _, rc := range page {
		ts := rc.GetCommit().GetAuthor().GetDate().Time
		if ts.IsZero() {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, nil
}

// FetchLanguages returns the language to byte-count map for one repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, fullName string) (map[string]int64, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repository full name %q", fullName)
	}

	var raw map[string]int
	err := g.withRetry(ctx, "list languages", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		raw, resp, err = g.restClient.Repositories.ListLanguages(ctx, owner, name)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	languages := make(map[string]int64, len(raw))
	for lang, bytes := range raw {
		languages[lang] = int64(bytes)
	}
	return languages, nil
}

// contributionsQuery fetches the contribution calendar total for a window.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// FetchTotalContributions returns the contribution calendar total for user
// between from and to, using the GraphQL API.
func (g *GitHubGateway) FetchTotalContributions(ctx context.Context, user string, from, to time.Time) (int, error) {
	variables := map[string]interface{}{
		"login": githubv4.String(user),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	return int(q.User.ContributionsCollection.ContributionCalendar.TotalContributions), nil
}
