package analyzer

import (
	"regexp"

	"statchat-backend/internal/model"
	"statchat-backend/internal/util"
)

// timeFrameExtractor is one strategy in the ordered extraction sequence.
// Extractors are tried in slice order and the first match is recorded;
// a question is assumed not to mix two time-frame types.
type timeFrameExtractor struct {
	kind  string
	re    *regexp.Regexp
	build func(match []string) (model.TimeFrame, bool)
}

var dateToken = `\d{1,2}/\d{1,2}/\d{4}|\d{4}`

// Ordered most-specific-first so looser patterns never mask tighter ones:
// explicit date range, relative year range, season token, before, since.
var timeFrameExtractors = []timeFrameExtractor{
	{
		kind: model.TimeFrameBetween,
		re:   regexp.MustCompile(`(?i)\bbetween\s+(` + dateToken + `)\s+and\s+(` + dateToken + `)`),
		build: func(m []string) (model.TimeFrame, bool) {
			return model.TimeFrame{
				Kind:  model.TimeFrameBetween,
				Value: m[1] + " and " + m[2],
				Start: m[1],
				End:   m[2],
			}, true
		},
	},
	{
		kind: model.TimeFrameRange,
		re:   regexp.MustCompile(`(?i)\b(\d{4})\s*(?:to|-|–)\s*(\d{4})\b`),
		build: func(m []string) (model.TimeFrame, bool) {
			return model.TimeFrame{
				Kind:  model.TimeFrameRange,
				Value: m[1] + " to " + m[2],
				Start: m[1],
				End:   m[2],
			}, true
		},
	},
	{
		kind: model.TimeFrameSeason,
		re:   regexp.MustCompile(`(?i)\b(\d{4}[/-]\d{2})\b`),
		build: func(m []string) (model.TimeFrame, bool) {
			season := util.NormalizeSeason(m[1])
			if season == "" {
				return model.TimeFrame{}, false
			}
			return model.TimeFrame{Kind: model.TimeFrameSeason, Value: season}, true
		},
	},
	{
		kind: model.TimeFrameBefore,
		re:   regexp.MustCompile(`(?i)\bbefore\s+(?:the\s+)?(\d{4}(?:[/-]\d{2})?)`),
		build: func(m []string) (model.TimeFrame, bool) {
			value := m[1]
			if season := util.NormalizeSeason(value); season != "" {
				value = season
			}
			return model.TimeFrame{Kind: model.TimeFrameBefore, Value: value, End: value}, true
		},
	},
	{
		kind: model.TimeFrameSince,
		re:   regexp.MustCompile(`(?i)\bsince\s+(\d{4})\b`),
		build: func(m []string) (model.TimeFrame, bool) {
			return model.TimeFrame{Kind: model.TimeFrameSince, Value: m[1], Start: m[1]}, true
		},
	},
}

// extractTimeFrame runs the ordered strategies and returns the first match.
func extractTimeFrame(question string) (model.TimeFrame, bool) {
	for _, ex := range timeFrameExtractors {
		m := ex.re.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		if tf, ok := ex.build(m); ok {
			return tf, true
		}
	}
	return model.TimeFrame{}, false
}

var bareDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)

// extractBareDate picks up a lone match date ("12/10/2021") when no
// structured time frame matched; rendered as an "on DATE" clause.
func extractBareDate(question string) string {
	return bareDateRe.FindString(question)
}
