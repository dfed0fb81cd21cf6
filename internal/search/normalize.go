package search

import (
	"html"
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes markup tags and unescapes HTML entities. Some providers
// return titles and descriptions with embedded <b> highlighting.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagPattern.ReplaceAllString(s, ""))
}

// SecureImageURL upgrades plain-http image URLs to https
func SecureImageURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// NormalizeReleaseDate expands partial dates to day granularity: a bare year
// becomes YYYY-01-01 and a year-month becomes YYYY-MM-01. Anything already at
// day granularity, or unrecognized, passes through unchanged.
func NormalizeReleaseDate(date string) string {
	switch len(date) {
	case 4: // YYYY
		return date + "-01-01"
	case 7: // YYYY-MM
		return date + "-01"
	default:
		return date
	}
}

// CompactDate converts a YYYYMMDD date to YYYY-MM-DD; shorter inputs pass
// through NormalizeReleaseDate.
func CompactDate(date string) string {
	if len(date) == 8 && !strings.Contains(date, "-") {
		return date[:4] + "-" + date[4:6] + "-" + date[6:8]
	}
	return NormalizeReleaseDate(date)
}
