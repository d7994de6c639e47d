package core

import (
	"regexp"
	"strings"
)

// Precompiled patterns for secret shapes that can leak into error strings
// via gateway responses or misconfigured URLs. Everything placed into a
// PipelineResult goes through here because results are logged verbatim.
var (
	bearerTokenRe = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-\._~\+\/]+=*`)
	kvSecretRe    = regexp.MustCompile(
		`(?i)(api[_-]?key|apikey|token|secret|password|credential|authorization)\s*[:=]\s*["']?[^"'\s]+["']?`,
	)
	urlCredRe = regexp.MustCompile(`(?i)(https?://)[^@\s/]+@[^\s]+`)
)

// RedactString trims, scrubs credential-shaped substrings, and truncates.
func RedactString(s string) string {
	const maxLen = 256
	s = strings.TrimSpace(s)
	s = urlCredRe.ReplaceAllString(s, "$1[REDACTED]")
	s = bearerTokenRe.ReplaceAllString(s, "$1[REDACTED]")
	s = kvSecretRe.ReplaceAllString(s, "$1=[REDACTED]")
	if len(s) > maxLen {
		s = s[:maxLen] + "…"
	}
	return s
}

// RedactError applies RedactString to an error, returning an empty string
// when nil.
func RedactError(err error) string {
	if err == nil {
		return ""
	}
	return RedactString(err.Error())
}
