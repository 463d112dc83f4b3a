// Package validation checks browser origins for the dashboard websocket.
package validation

import (
	"fmt"
	"net/url"
	"strings"
)

var dangerousChars = []string{" ", ";", "<", ">", "\"", "'", "\\", "`", "\n", "\r", "\t"}

// OriginHost normalizes a configured origin, either a bare host[:port] or an
// http(s) URL, to a lowercase host[:port].
func OriginHost(entry string) (string, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return "", fmt.Errorf("origin is empty")
	}

	for _, char := range dangerousChars {
		if strings.Contains(entry, char) {
			return "", fmt.Errorf("origin contains invalid character %q", char)
		}
	}

	if !strings.Contains(entry, "://") {
		if strings.ContainsAny(entry, "/?#@") {
			return "", fmt.Errorf("origin %q must be a host or an http(s) URL", entry)
		}
		return strings.ToLower(entry), nil
	}

	parsed, err := url.Parse(entry)
	if err != nil {
		return "", fmt.Errorf("invalid origin format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("origin %q must have a host", entry)
	}

	return strings.ToLower(parsed.Host), nil
}

// ValidateOrigin checks an Origin request header against allowed hosts, as
// returned by OriginHost.
func ValidateOrigin(origin string, allowedHosts []string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", originURL.Scheme)
	}

	host := strings.ToLower(originURL.Host)
	for _, allowed := range allowedHosts {
		if host != "" && host == allowed {
			return nil
		}
	}

	return fmt.Errorf("origin '%s' is not in allowed origins list", origin)
}
