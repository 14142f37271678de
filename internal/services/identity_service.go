package services

import (
	"strings"
)

const githubHostPrefix = "github.com/"

// NormalizeIdentity extracts the lowercase GitHub username from a bare username or a
// profile URL in any of its usual spellings (with or without scheme, "www.", trailing
// path, query or fragment). Input that holds no username yields "".
func NormalizeIdentity(value string) string {
	for {
		next := normalizeOnce(value)
		if next == value {
			return next
		}
		value = next
	}
}

func normalizeOnce(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(value, "https://"); ok {
		value = rest
	} else if rest, ok := strings.CutPrefix(value, "http://"); ok {
		value = rest
	}
	value = strings.TrimPrefix(value, "www.")

	if strings.HasPrefix(value, githubHostPrefix) {
		_, value, _ = strings.Cut(value, "/")
	}

	value, _, _ = strings.Cut(value, "?")
	value, _, _ = strings.Cut(value, "#")
	return strings.Trim(value, "/")
}

// ProfileLink builds the canonical profile URL for a normalized identity
func ProfileLink(baseURL, identity string) string {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + identity
}
