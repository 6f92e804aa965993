package figma

import (
	"net/url"
	"strings"
)

// ExtractFileKey returns the file key of a Figma design URL, accepting both
// /file/<key>/... and /design/<key>/... paths.
func ExtractFileKey(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || !strings.Contains(u.Hostname(), "figma.com") {
		return "", ErrInvalidURL
	}

	parts := strings.Split(u.Path, "/")
	for _, marker := range []string{"file", "design"} {
		for i, p := range parts {
			if p == marker && i+1 < len(parts) && parts[i+1] != "" {
				return parts[i+1], nil
			}
		}
	}
	return "", ErrInvalidURL
}
