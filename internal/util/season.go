package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var seasonRe = regexp.MustCompile(`^(\d{4})[/-](\d{2})$`)

// NormalizeSeason converts a season token to canonical slash form, so
// "2021-22" and "2021/22" resolve identically. Returns "" when the token
// is not a season.
func NormalizeSeason(token string) string {
	m := seasonRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return ""
	}
	return m[1] + "/" + m[2]
}

// SeasonStartYear returns the opening year of a canonical season token,
// or 0 when the token is not a season.
func SeasonStartYear(season string) int {
	m := seasonRe.FindStringSubmatch(season)
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[1])
	return year
}

var (
	squadOrdinalRe = regexp.MustCompile(`(?i)^(\d)(?:st|nd|rd|th)\s+XI$`)
	squadShortRe   = regexp.MustCompile(`^(\d)s$`)
)

// CanonicalSquad normalizes numbered-squad phrasing ("4th XI", "4s") to
// the canonical squad token ("4th XI"). Returns "" for anything else.
func CanonicalSquad(token string) string {
	token = strings.TrimSpace(token)
	if m := squadOrdinalRe.FindStringSubmatch(token); m != nil {
		return Ordinal(mustAtoi(m[1])) + " XI"
	}
	if m := squadShortRe.FindStringSubmatch(strings.ToLower(token)); m != nil {
		return Ordinal(mustAtoi(m[1])) + " XI"
	}
	return ""
}

// DisplaySquad resolves a canonical squad token back to its colloquial
// display form: "4th XI" -> "4s". Unrecognized tokens pass through.
func DisplaySquad(canonical string) string {
	if m := squadOrdinalRe.FindStringSubmatch(canonical); m != nil {
		return m[1] + "s"
	}
	return canonical
}

// Ordinal renders a small positive integer as an English ordinal.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
