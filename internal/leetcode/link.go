package leetcode

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const Host = "leetcode.com"

var (
	ErrBadHost = errors.New("link is not a leetcode.com link")
	ErrBadPath = errors.New("link does not point at a problem")
)

var (
	problemPathRe = regexp.MustCompile(`^(/[^/]+/[^/]+/)`)
	titleSlugRe   = regexp.MustCompile(`/([^/]+)/$`)
)

// SanitizeLink validates a problem link and strips it down to
// https://leetcode.com/<section>/<slug>/
func SanitizeLink(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid link %q: %w", raw, err)
	}

	if u.Hostname() == "" || !strings.EqualFold(u.Hostname(), Host) {
		return nil, fmt.Errorf("%q: %w", u.Host, ErrBadHost)
	}

	m := problemPathRe.FindString(u.Path)
	if m == "" {
		return nil, fmt.Errorf("%q: %w", u.Path, ErrBadPath)
	}

	return &url.URL{Scheme: "https", Host: Host, Path: m}, nil
}

// TitleSlug returns the last path segment of a sanitized link
func TitleSlug(u *url.URL) (string, error) {
	m := titleSlugRe.FindStringSubmatch(u.Path)
	if m == nil {
		return "", fmt.Errorf("no title slug in %s: %w", u, ErrBadPath)
	}
	return m[1], nil
}
