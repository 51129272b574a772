// Package selfupdate finds newer quizgen releases on GitHub and swaps the
// running executable for the matching release build.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"resty.dev/v3"
)

const (
	releaseOwner = "abhisek"
	releaseRepo  = "quizgen"

	apiURL      = "https://api.github.com"
	downloadURL = "https://github.com"
)

// Checker talks to the GitHub releases API and download host.
type Checker struct {
	api      string
	download string
	timeout  time.Duration
	execPath func() (string, error)
}

type Option func(*Checker)

// WithBaseURL overrides the GitHub API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.api = strings.TrimRight(u, "/") }
}

// WithDownloadBaseURL overrides the host release assets are fetched from.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.download = strings.TrimRight(u, "/") }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		api:      apiURL,
		download: downloadURL,
		timeout:  30 * time.Second,
		execPath: os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	ReleaseURL      string
}

type latestRelease struct {
	Tag string `json:"tag_name"`
	URL string `json:"html_url"`
}

func (c *Checker) client() *resty.Client {
	return resty.New().
		SetTimeout(c.timeout).
		SetHeader("User-Agent", "quizgen-selfupdate")
}

// get fetches url and fails on any non-2xx status.
func (c *Checker) get(ctx context.Context, client *resty.Client, url string) ([]byte, error) {
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode(), url)
	}
	return []byte(resp.String()), nil
}

// Check looks up the latest release and compares it with input.Version.
// Versions that are not semver (development builds) always compare older.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	client := c.client().SetHeader("Accept", "application/vnd.github+json")
	defer func() { _ = client.Close() }()

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.api, releaseOwner, releaseRepo)
	body, err := c.get(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}

	var rel latestRelease
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Tag == "" {
		return nil, fmt.Errorf("latest release has no tag")
	}

	latest := semverOf(rel.Tag)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("latest release tag %q is not a semantic version", rel.Tag)
	}

	current := semverOf(input.Version)
	newer := !semver.IsValid(current) || semver.Compare(latest, current) > 0
	return &CheckResult{
		UpdateAvailable: newer,
		LatestVersion:   rel.Tag,
		ReleaseURL:      rel.URL,
	}, nil
}

func semverOf(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
