package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statchat-backend/internal/analyzer"
	"statchat-backend/internal/catalog"
	"statchat-backend/internal/model"
)

type stubSubjects struct {
	names []string
}

func (s stubSubjects) PlayerNames() []string { return s.names }

func newAnalyzer(names ...string) *analyzer.Analyzer {
	if names == nil {
		names = []string{"Luke Bangs", "Luke", "Sam Holt"}
	}
	return analyzer.NewAnalyzer(catalog.NewCatalog(), stubSubjects{names: names})
}

func TestAnalyze_SubjectResolution(t *testing.T) {
	tests := []struct {
		name             string
		question         string
		userContext      string
		expectedType     string
		expectedEntities []string
		expectUnresolved string
	}{
		{
			name:             "UserContext Takes Precedence",
			question:         "How many goals has Sam Holt scored?",
			userContext:      "Luke Bangs",
			expectedType:     model.SubjectPlayer,
			expectedEntities: []string{"Luke Bangs"},
		},
		{
			name:             "Longest Name Wins",
			question:         "How many goals has Luke Bangs scored?",
			expectedType:     model.SubjectPlayer,
			expectedEntities: []string{"Luke Bangs"},
		},
		{
			name:         "Ambiguous Subjects Degrade To Unknown",
			question:     "Did Luke Bangs score more than Sam Holt?",
			expectedType: model.SubjectUnknown,
		},
		{
			name:             "Unknown Subject Token Recorded",
			question:         "How many goals has Unknown Player scored?",
			expectedType:     model.SubjectUnknown,
			expectUnresolved: "Unknown Player",
		},
		{
			name:         "Club Aggregate",
			question:     "How many goals have all players scored in total?",
			expectedType: model.SubjectClub,
		},
		{
			name:             "Squad As Team Subject",
			question:         "How many goals have the 4s scored?",
			expectedType:     model.SubjectTeam,
			expectedEntities: []string{"4th XI"},
		},
		{
			name:         "No Subject At All",
			question:     "How many goals were scored?",
			expectedType: model.SubjectUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalyzer()
			analysis := a.Analyze(model.QuestionContext{Question: tt.question, UserContext: tt.userContext})
			assert.Equal(t, tt.expectedType, analysis.Type)
			assert.Equal(t, tt.expectedEntities, analysis.Entities)
			if tt.expectUnresolved != "" {
				assert.Equal(t, tt.expectUnresolved, analysis.UnresolvedSubject)
			}
		})
	}
}

func TestAnalyze_UnknownUserContext(t *testing.T) {
	a := newAnalyzer()
	analysis := a.Analyze(model.QuestionContext{
		Question:    "How many goals?",
		UserContext: "Nobody Here",
	})
	assert.Equal(t, model.SubjectUnknown, analysis.Type)
	assert.Equal(t, "Nobody Here", analysis.UnresolvedSubject)
}

func TestAnalyze_Metrics(t *testing.T) {
	a := newAnalyzer()

	analysis := a.Analyze(model.QuestionContext{Question: "How many goals and assists does Luke Bangs have?"})
	assert.Equal(t, []string{catalog.MetricGoals, catalog.MetricAssists}, analysis.Metrics)

	analysis = a.Analyze(model.QuestionContext{Question: "What is this?"})
	assert.Empty(t, analysis.Metrics)
}

func TestAnalyze_TimeFramePrecedence(t *testing.T) {
	tests := []struct {
		name          string
		question      string
		expectedKind  string
		expectedValue string
	}{
		{
			name:          "Between Dates",
			question:      "goals between 01/09/2021 and 30/04/2022",
			expectedKind:  model.TimeFrameBetween,
			expectedValue: "01/09/2021 and 30/04/2022",
		},
		{
			name:          "Between Years",
			question:      "goals between 2021 and 2022",
			expectedKind:  model.TimeFrameBetween,
			expectedValue: "2021 and 2022",
		},
		{
			name:          "Year Range",
			question:      "goals from 2019 to 2021",
			expectedKind:  model.TimeFrameRange,
			expectedValue: "2019 to 2021",
		},
		{
			name:          "Hyphenated Year Range",
			question:      "goals scored in range 2021-2022",
			expectedKind:  model.TimeFrameRange,
			expectedValue: "2021 to 2022",
		},
		{
			name:          "Season Slash Form",
			question:      "goals in 2021/22",
			expectedKind:  model.TimeFrameSeason,
			expectedValue: "2021/22",
		},
		{
			name:          "Season Hyphen Form Normalizes",
			question:      "goals in 2021-22",
			expectedKind:  model.TimeFrameSeason,
			expectedValue: "2021/22",
		},
		{
			// The season extractor runs ahead of "before", so a season
			// token always wins even under a "before" phrasing.
			name:          "Season Token Masks Before",
			question:      "goals before the 2016/17 season",
			expectedKind:  model.TimeFrameSeason,
			expectedValue: "2016/17",
		},
		{
			name:          "Before Year",
			question:      "goals before 2016",
			expectedKind:  model.TimeFrameBefore,
			expectedValue: "2016",
		},
		{
			name:          "Since Year",
			question:      "goals since 2016",
			expectedKind:  model.TimeFrameSince,
			expectedValue: "2016",
		},
		{
			name:          "Between Masks Season",
			question:      "goals between 2019 and 2021 in the 2020/21 season",
			expectedKind:  model.TimeFrameBetween,
			expectedValue: "2019 and 2021",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalyzer()
			analysis := a.Analyze(model.QuestionContext{Question: tt.question})
			tf, ok := analysis.FirstTimeFrame()
			require.True(t, ok)
			assert.Equal(t, tt.expectedKind, tf.Kind)
			assert.Equal(t, tt.expectedValue, tf.Value)
			assert.Equal(t, tt.expectedValue, analysis.TimeRange)
		})
	}
}

func TestAnalyze_SeasonRoundTrip(t *testing.T) {
	a := newAnalyzer()
	slash := a.Analyze(model.QuestionContext{Question: "How many goals has Luke Bangs scored in 2021/22?"})
	hyphen := a.Analyze(model.QuestionContext{Question: "How many goals has Luke Bangs scored in 2021-22?"})
	assert.Equal(t, slash.Extraction.TimeFrames, hyphen.Extraction.TimeFrames)
	assert.Equal(t, slash.TimeRange, hyphen.TimeRange)
}

func TestAnalyze_Filters(t *testing.T) {
	a := newAnalyzer()

	analysis := a.Analyze(model.QuestionContext{
		Question: "How many goals has Luke Bangs scored for the 4th XI at home in the league as a forward in wins?",
	})
	ex := analysis.Extraction
	assert.Equal(t, []string{"4th XI"}, ex.TeamEntities)
	assert.Equal(t, []string{model.LocationHome}, ex.Locations)
	assert.Equal(t, []string{"league"}, ex.Competitions)
	assert.Equal(t, []string{"win"}, ex.Results)
	assert.Equal(t, []string{"FWD"}, ex.Positions)
}

func TestAnalyze_SquadExclusionIsNotAnInclusion(t *testing.T) {
	a := newAnalyzer()
	analysis := a.Analyze(model.QuestionContext{
		Question:    "How many goals has Luke Bangs scored when not playing for the 2s?",
		UserContext: "Luke Bangs",
	})
	assert.Equal(t, []string{"2nd XI"}, analysis.Extraction.TeamExclusions)
	assert.Empty(t, analysis.Extraction.TeamEntities)
}

func TestAnalyze_AwayLocation(t *testing.T) {
	a := newAnalyzer()
	analysis := a.Analyze(model.QuestionContext{Question: "How many goals has Luke Bangs scored away?"})
	assert.Equal(t, []string{model.LocationAway}, analysis.Extraction.Locations)
}

func TestAnalyze_MaliciousInputIsNeverEchoable(t *testing.T) {
	a := newAnalyzer()

	tests := []string{
		"How many goals has <script>alert('x')</script> scored?",
		"Robert'); DROP TABLE players;-- goals",
		"goals\x00\x01 for \x1b[31mX",
	}
	for _, question := range tests {
		analysis := a.Analyze(model.QuestionContext{Question: question})
		assert.NotContains(t, analysis.UnresolvedSubject, "<script")
		assert.NotContains(t, analysis.UnresolvedSubject, "DROP TABLE")
	}

	analysis := a.Analyze(model.QuestionContext{
		Question:    "How many goals?",
		UserContext: "<script>alert(1)</script>",
	})
	assert.Equal(t, model.SubjectUnknown, analysis.Type)
	assert.Empty(t, analysis.UnresolvedSubject)
}
