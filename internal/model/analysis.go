package model

// Subject types a question can resolve to.
const (
	SubjectPlayer  = "player"
	SubjectTeam    = "team"
	SubjectClub    = "club"
	SubjectUnknown = "unknown"
)

// Time-frame kinds, in extraction precedence order.
const (
	TimeFrameBetween = "between"
	TimeFrameRange   = "range"
	TimeFrameSeason  = "season"
	TimeFrameBefore  = "before"
	TimeFrameSince   = "since"
)

// Location filter values.
const (
	LocationHome = "home"
	LocationAway = "away"
)

// QuestionContext is the per-request input to the analyzer. UserContext,
// when set, is a pre-selected subject name and takes precedence over any
// subject inferred from the question text.
type QuestionContext struct {
	Question    string
	UserContext string
}

// TimeFrame is one extracted time constraint. Start/End are populated for
// ranged kinds; Value holds the normalized surface form (e.g. "2021/22").
type TimeFrame struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ExtractionResult groups the independent filter extractions. All present
// filters are combined conjunctively by the query builder.
type ExtractionResult struct {
	TimeFrames     []TimeFrame `json:"time_frames,omitempty"`
	Locations      []string    `json:"locations,omitempty"`
	TeamEntities   []string    `json:"team_entities,omitempty"`
	TeamExclusions []string    `json:"team_exclusions,omitempty"`
	Competitions   []string    `json:"competitions,omitempty"`
	Results        []string    `json:"results,omitempty"`
	Positions      []string    `json:"positions,omitempty"`
}

// QuestionAnalysis is the structured intent extracted from a question.
// Metrics empty signals an unanswerable question; Type degrades to
// SubjectUnknown when no subject can be resolved unambiguously.
type QuestionAnalysis struct {
	Type              string           `json:"type"`
	Entities          []string         `json:"entities,omitempty"`
	Metrics           []string         `json:"metrics,omitempty"`
	TimeRange         string           `json:"time_range,omitempty"`
	UnresolvedSubject string           `json:"unresolved_subject,omitempty"`
	Extraction        ExtractionResult `json:"extraction"`
}

// Subject returns the resolved subject name, or "" when none was resolved.
func (a QuestionAnalysis) Subject() string {
	if len(a.Entities) == 0 {
		return ""
	}
	return a.Entities[0]
}

// FirstTimeFrame returns the single recorded time frame, if any. The
// analyzer records at most one: the first matching extractor wins.
func (a QuestionAnalysis) FirstTimeFrame() (TimeFrame, bool) {
	if len(a.Extraction.TimeFrames) == 0 {
		return TimeFrame{}, false
	}
	return a.Extraction.TimeFrames[0], true
}
