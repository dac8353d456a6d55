package analyzer

import (
	"regexp"

	"statchat-backend/internal/model"
	"statchat-backend/internal/util"
)

// Filter extraction. Each extractor is independent; everything found is
// combined conjunctively by the query builder.

var (
	squadRe          = regexp.MustCompile(`(?i)\b(\d(?:st|nd|rd|th)\s+XI|\ds)\b`)
	squadExclusionRe = regexp.MustCompile(`(?i)\bwhen\s+not\s+playing\s+for\s+(?:the\s+)?(\d(?:st|nd|rd|th)\s+XI|\ds)\b`)
	homeRe           = regexp.MustCompile(`(?i)\bat\s+home\b`)
	awayRe           = regexp.MustCompile(`(?i)\baway\b`)

	competitionRes = []struct {
		value string
		re    *regexp.Regexp
	}{
		{"league", regexp.MustCompile(`(?i)\b(?:in\s+the\s+)?league\b`)},
		{"cup", regexp.MustCompile(`(?i)\bcup\b`)},
		{"friendly", regexp.MustCompile(`(?i)\bfriendl(?:y|ies)\b`)},
	}

	resultRes = []struct {
		value string
		re    *regexp.Regexp
	}{
		{"win", regexp.MustCompile(`(?i)\bin\s+(?:wins|victories|games\s+(?:they|we)\s+won)\b`)},
		{"draw", regexp.MustCompile(`(?i)\bin\s+draws\b`)},
		{"loss", regexp.MustCompile(`(?i)\bin\s+(?:losses|defeats|games\s+(?:they|we)\s+lost)\b`)},
	}

	positionRes = []struct {
		value string
		re    *regexp.Regexp
	}{
		{"GK", regexp.MustCompile(`(?i)\bas\s+(?:a\s+)?(?:goalkeeper|keeper|gk)\b|\bin\s+goal\b`)},
		{"DEF", regexp.MustCompile(`(?i)\bas\s+(?:a\s+)?(?:defender|def)\b|\bin\s+defence\b`)},
		{"MID", regexp.MustCompile(`(?i)\bas\s+(?:a\s+)?(?:midfielder|mid)\b|\bin\s+midfield\b`)},
		{"FWD", regexp.MustCompile(`(?i)\bas\s+(?:a\s+)?(?:forward|striker|fwd)\b|\bup\s+front\b`)},
	}
)

func extractFilters(question string) model.ExtractionResult {
	var result model.ExtractionResult

	// Exclusions first, and their spans masked, so "when not playing for
	// the 2s" never also records the 2s as an inclusion.
	masked := question
	for _, m := range squadExclusionRe.FindAllStringSubmatch(question, -1) {
		if squad := util.CanonicalSquad(m[1]); squad != "" {
			result.TeamExclusions = append(result.TeamExclusions, squad)
		}
	}
	masked = squadExclusionRe.ReplaceAllString(masked, "")

	for _, m := range squadRe.FindAllStringSubmatch(masked, -1) {
		if squad := util.CanonicalSquad(m[1]); squad != "" && !contains(result.TeamEntities, squad) {
			result.TeamEntities = append(result.TeamEntities, squad)
		}
	}

	if homeRe.MatchString(question) {
		result.Locations = append(result.Locations, model.LocationHome)
	} else if awayRe.MatchString(question) {
		result.Locations = append(result.Locations, model.LocationAway)
	}

	for _, c := range competitionRes {
		if c.re.MatchString(question) {
			result.Competitions = append(result.Competitions, c.value)
			break
		}
	}

	for _, r := range resultRes {
		if r.re.MatchString(question) {
			result.Results = append(result.Results, r.value)
			break
		}
	}

	for _, p := range positionRes {
		if p.re.MatchString(question) {
			result.Positions = append(result.Positions, p.value)
			break
		}
	}

	return result
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
