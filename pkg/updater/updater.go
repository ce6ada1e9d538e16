// Package updater checks GitHub releases for a newer spanview build than
// the one currently running.
package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Release is the subset of a GitHub releases-API response this package needs.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdates queries GitHub for the latest spanview release and
// compares it against currentVersion. It returns the new tag and its
// release page URL if an update is available, or two empty strings if not.
func CheckForUpdates(currentVersion string) (string, string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	return checkForUpdates(client, "https://api.github.com/repos/dicklesworthstone/spanscope/releases/latest", currentVersion)
}

func checkForUpdates(client *http.Client, url, currentVersion string) (string, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", "spanview-update-check")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
			return "", "", nil
		}
		return "", "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", "", err
	}

	if compareVersions(rel.TagName, currentVersion) > 0 {
		return rel.TagName, rel.HTMLURL, nil
	}
	return "", "", nil
}

// compareVersions compares semver-ish strings with optional leading 'v' and
// optional pre-release suffix (e.g. v1.2.3-alpha). Pre-release versions sort
// lower than their corresponding release. Returns 1 if v1>v2, -1 if v1<v2,
// 0 if equal; falls back to lexicographic comparison if parsing fails.
func compareVersions(v1, v2 string) int {
	type parsed struct {
		parts      []int
		prerelease bool
		preLabel   string
	}

	parse := func(v string) *parsed {
		v = strings.TrimPrefix(v, "v")
		prerelease := false
		preLabel := ""
		if idx := strings.Index(v, "-"); idx != -1 {
			prerelease = true
			preLabel = v[idx+1:]
			v = v[:idx]
		}
		parts := strings.Split(v, ".")
		res := make([]int, 3)
		for i := 0; i < len(res) && i < len(parts); i++ {
			n, err := strconv.Atoi(parts[i])
			if err != nil {
				return nil
			}
			res[i] = n
		}
		return &parsed{parts: res, prerelease: prerelease, preLabel: preLabel}
	}

	p1, p2 := parse(v1), parse(v2)
	if p1 != nil && p2 != nil {
		for i := 0; i < 3; i++ {
			if p1.parts[i] != p2.parts[i] {
				if p1.parts[i] > p2.parts[i] {
					return 1
				}
				return -1
			}
		}
		if p1.prerelease || p2.prerelease {
			if p1.prerelease && !p2.prerelease {
				return -1
			}
			if !p1.prerelease && p2.prerelease {
				return 1
			}
			if p1.preLabel != p2.preLabel {
				if p1.preLabel > p2.preLabel {
					return 1
				}
				return -1
			}
		}
		return 0
	}

	v1, v2 = strings.TrimPrefix(v1, "v"), strings.TrimPrefix(v2, "v")
	if v1 > v2 {
		return 1
	} else if v1 < v2 {
		return -1
	}
	return 0
}
