package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Format controls how a metric value is rendered.
type Format int

const (
	FormatInteger Format = iota
	FormatDecimal1
	FormatDecimal2
	FormatPercentage
	FormatString
)

// Family tags a metric for renderer dispatch. Each family carries its own
// sentence renderer in the responder; selection is a single lookup.
type Family int

const (
	FamilyCount Family = iota
	FamilyAppearance
	FamilyRatio
	FamilyPercentage
	FamilyAffiliation
)

// MetricDefinition describes one recognized statistic. Aliases are matched
// case-insensitively on word boundaries; resolution is exact key first,
// then alias, never fuzzy.
type MetricDefinition struct {
	Key      string
	Aliases  []string
	Singular string
	Plural   string
	Verb     string
	// ZeroAction is the verb phrase used in ranged zero sentences,
	// e.g. "score" in "didn't score in the 2016/17 season".
	ZeroAction string
	Format     Format
	Family     Family
}

// DisplayName returns the value-dependent surface name of the metric.
func (d MetricDefinition) DisplayName(value float64) string {
	if math.Abs(value-1) < epsilon {
		return d.Singular
	}
	return d.Plural
}

// FormatValue renders a numeric value according to the metric's format.
func (d MetricDefinition) FormatValue(value float64) string {
	switch d.Format {
	case FormatDecimal1:
		return fmt.Sprintf("%.1f", value)
	case FormatDecimal2:
		return fmt.Sprintf("%.2f", value)
	case FormatPercentage:
		if math.Abs(value-math.Round(value)) < epsilon {
			return fmt.Sprintf("%.0f%%", value)
		}
		return fmt.Sprintf("%.1f%%", value)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

const epsilon = 1e-9

// IsZero reports whether a value is exactly zero, within floating-point
// epsilon for derived ratios.
func IsZero(value float64) bool {
	return math.Abs(value) < epsilon
}

type aliasPattern struct {
	key string
	re  *regexp.Regexp
}

// Catalog is the static metric registry. Built once at startup and
// read-only afterwards.
type Catalog struct {
	defs     []MetricDefinition
	byKey    map[string]MetricDefinition
	patterns []aliasPattern
}

// Canonical metric keys.
const (
	MetricGoals          = "goals"
	MetricAssists        = "assists"
	MetricAppearances    = "appearances"
	MetricGoalsPerGame   = "goalsPerGame"
	MetricWinPercentage  = "winPercentage"
	MetricYellowCards    = "yellowCards"
	MetricRedCards       = "redCards"
	MetricGreenCards     = "greenCards"
	MetricGoalsConceded  = "goalsConceded"
	MetricCleanSheets    = "cleanSheets"
	MetricMOTM           = "motm"
	MetricCurrentTeam    = "currentTeam"
)

// NewCatalog builds the metric registry. Definition order is load-bearing:
// more specific aliases ("goals conceded", "goals per game") are listed
// before the bare forms they contain, and matched spans are masked so a
// question never resolves the same text to two metrics.
func NewCatalog() *Catalog {
	defs := []MetricDefinition{
		{
			Key:        MetricGoalsPerGame,
			Aliases:    []string{"goals per game", "goals per appearance", "goals a game", "goal ratio"},
			Singular:   "goal per game",
			Plural:     "goals per game",
			Verb:       "scored",
			ZeroAction: "score",
			Format:     FormatDecimal2,
			Family:     FamilyRatio,
		},
		{
			Key:        MetricGoalsConceded,
			Aliases:    []string{"goals conceded", "conceded", "let in"},
			Singular:   "goal conceded",
			Plural:     "goals conceded",
			Verb:       "conceded",
			ZeroAction: "concede a goal",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricWinPercentage,
			Aliases:    []string{"win percentage", "win rate", "win ratio", "percentage of games won"},
			Singular:   "win percentage",
			Plural:     "win percentage",
			Verb:       "has",
			ZeroAction: "win a game",
			Format:     FormatPercentage,
			Family:     FamilyPercentage,
		},
		{
			Key:        MetricCleanSheets,
			Aliases:    []string{"clean sheets", "clean sheet", "shutouts"},
			Singular:   "clean sheet",
			Plural:     "clean sheets",
			Verb:       "kept",
			ZeroAction: "keep a clean sheet",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricYellowCards,
			Aliases:    []string{"yellow cards", "yellow card", "yellows"},
			Singular:   "yellow card",
			Plural:     "yellow cards",
			Verb:       "received",
			ZeroAction: "receive a yellow card",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricRedCards,
			Aliases:    []string{"red cards", "red card", "reds"},
			Singular:   "red card",
			Plural:     "red cards",
			Verb:       "received",
			ZeroAction: "receive a red card",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricGreenCards,
			Aliases:    []string{"green cards", "green card", "greens"},
			Singular:   "green card",
			Plural:     "green cards",
			Verb:       "received",
			ZeroAction: "receive a green card",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricMOTM,
			Aliases:    []string{"man of the match", "player of the match", "motm", "motm awards"},
			Singular:   "man of the match award",
			Plural:     "man of the match awards",
			Verb:       "won",
			ZeroAction: "win a man of the match award",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricCurrentTeam,
			Aliases:    []string{"which team", "what team", "play for", "plays for"},
			Singular:   "team",
			Plural:     "team",
			Verb:       "plays for",
			ZeroAction: "",
			Format:     FormatString,
			Family:     FamilyAffiliation,
		},
		{
			Key:        MetricGoals,
			Aliases:    []string{"goals", "goal", "scored", "score", "G", "AllGSC"},
			Singular:   "goal",
			Plural:     "goals",
			Verb:       "scored",
			ZeroAction: "score",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricAssists,
			Aliases:    []string{"assists", "assist", "assisted"},
			Singular:   "assist",
			Plural:     "assists",
			Verb:       "provided",
			ZeroAction: "provide an assist",
			Format:     FormatInteger,
			Family:     FamilyCount,
		},
		{
			Key:        MetricAppearances,
			Aliases:    []string{"appearances", "appearance", "apps", "games played", "caps", "played"},
			Singular:   "appearance",
			Plural:     "appearances",
			Verb:       "made",
			ZeroAction: "make an appearance",
			Format:     FormatInteger,
			Family:     FamilyAppearance,
		},
	}

	c := &Catalog{
		defs:  defs,
		byKey: make(map[string]MetricDefinition, len(defs)),
	}
	for _, d := range defs {
		c.byKey[strings.ToLower(d.Key)] = d
		for _, alias := range d.Aliases {
			c.patterns = append(c.patterns, aliasPattern{
				key: d.Key,
				re:  regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(alias) + `\b`),
			})
		}
	}
	return c
}

// Definitions returns the catalog entries in registration order.
func (c *Catalog) Definitions() []MetricDefinition {
	return c.defs
}

// Resolve maps a metric token to its definition: exact canonical key first,
// then alias, both case-insensitive. Ambiguous aliases are a data-authoring
// bug, not a runtime decision, so first match wins.
func (c *Catalog) Resolve(token string) (MetricDefinition, bool) {
	if d, ok := c.byKey[strings.ToLower(token)]; ok {
		return d, true
	}
	lowered := strings.ToLower(strings.TrimSpace(token))
	for _, d := range c.defs {
		for _, alias := range d.Aliases {
			if strings.ToLower(alias) == lowered {
				return d, true
			}
		}
	}
	return MetricDefinition{}, false
}

// MatchText scans free text against the alias table and returns the
// canonical keys of every metric mentioned, in registration order. Matched
// spans are masked so "goals conceded" never also yields "goals".
func (c *Catalog) MatchText(text string) []string {
	masked := []byte(text)
	seen := make(map[string]bool)
	var keys []string
	for _, p := range c.patterns {
		locs := p.re.FindAllIndex(masked, -1)
		if len(locs) == 0 {
			continue
		}
		for _, loc := range locs {
			for i := loc[0]; i < loc[1]; i++ {
				masked[i] = '#'
			}
		}
		if !seen[p.key] {
			seen[p.key] = true
			keys = append(keys, p.key)
		}
	}
	return keys
}
