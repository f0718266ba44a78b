package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const checkTimeout = 5 * time.Second

// Release is the subset of a GitHub release the checker reads
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Result describes how the running build compares to the latest release
type Result struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

// Checker queries a releases endpoint
type Checker struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewChecker creates a checker for the releases endpoint at url
func NewChecker(url, userAgent string) *Checker {
	return &Checker{
		url:       url,
		userAgent: userAgent,
		client:    &http.Client{Timeout: checkTimeout},
	}
}

// Check fetches the latest release and compares it with current
func (c *Checker) Check(ctx context.Context, current string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	res := Result{
		Current: strings.TrimPrefix(current, "v"),
		Latest:  strings.TrimPrefix(release.TagName, "v"),
		URL:     release.HTMLURL,
	}
	res.Available = res.Latest != "" && isNewerVersion(res.Latest, res.Current)

	return res, nil
}

// isNewerVersion reports whether latest > current.
// Pre-release and build suffixes ("-dev", "+build1") are ignored.
func isNewerVersion(latest, current string) bool {
	return compareVersions(parseVersion(latest), parseVersion(current)) > 0
}

func compareVersions(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

// parseVersion splits "1.2.3" into numbers, skipping parts that are not numeric
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var result []int
	for _, part := range strings.Split(version, ".") {
		if num, err := strconv.Atoi(part); err == nil {
			result = append(result, num)
		}
	}
	return result
}
