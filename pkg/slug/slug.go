// Package slug builds URL path segments for titles and lists.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	stripRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	collapseRe = regexp.MustCompile(`[-\s]+`)
)

// Title lowercases title, drops punctuation, joins words with hyphens and
// appends year when it is positive: ("The Matrix", 1999) -> "the-matrix-1999".
func Title(title string, year int) string {
	s := stripRe.ReplaceAllString(strings.ToLower(title), "")
	s = strings.Trim(collapseRe.ReplaceAllString(s, "-"), "-")
	if year > 0 {
		if s == "" {
			return strconv.Itoa(year)
		}
		s += "-" + strconv.Itoa(year)
	}
	return s
}

// Year extracts the leading four-digit year from a YYYY-MM-DD date, or 0.
func Year(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// ListName turns a list slug back into the name it was most likely built
// from by replacing hyphens with spaces. Names that contained hyphens
// themselves are not recoverable; callers should try the raw slug first.
func ListName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "-", " "))
}

// List builds the slug of a list name.
func List(name string) string {
	return strings.Trim(collapseRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-"), "-")
}
