package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"statchat-backend/internal/catalog"
	"statchat-backend/internal/model"
	"statchat-backend/internal/util"
)

// GraphQuery is one parameterized Cypher read for a single metric.
type GraphQuery struct {
	Metric string
	Cypher string
	Params map[string]interface{}
}

// Builder translates a question analysis into parameterized graph reads.
// Filters are AND-combined; a filter category with no predicate
// translation is silently omitted, so an overly specific question widens
// to a less specific answer rather than failing.
type Builder struct {
	catalog *catalog.Catalog
}

func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{catalog: cat}
}

// Build produces one query per requested metric. The goals and assists
// reads also project the appearance count so the responder can attach
// the "in N appearances" context without a second round trip.
func (b *Builder) Build(analysis model.QuestionAnalysis) []GraphQuery {
	queries := make([]GraphQuery, 0, len(analysis.Metrics))
	for _, metric := range analysis.Metrics {
		q, ok := b.buildOne(metric, analysis)
		if !ok {
			log.Warn().Str("metric", metric).Msg("No query translation for metric, skipping")
			continue
		}
		queries = append(queries, q)
	}
	return queries
}

func (b *Builder) buildOne(metric string, analysis model.QuestionAnalysis) (GraphQuery, bool) {
	def, ok := b.catalog.Resolve(metric)
	if !ok {
		return GraphQuery{}, false
	}

	params := make(map[string]interface{})

	if def.Key == catalog.MetricCurrentTeam {
		if analysis.Type != model.SubjectPlayer {
			return GraphQuery{}, false
		}
		params["name"] = analysis.Subject()
		return GraphQuery{
			Metric: def.Key,
			Cypher: "MATCH (p:Player {name: $name})-[:PLAYS_FOR]->(t:Team) RETURN t.name AS value",
			Params: params,
		}, true
	}

	var sb strings.Builder
	switch analysis.Type {
	case model.SubjectPlayer:
		sb.WriteString("MATCH (p:Player {name: $name})-[:MADE]->(a:Appearance)-[:IN]->(m:Match)")
		params["name"] = analysis.Subject()
	case model.SubjectTeam, model.SubjectClub:
		sb.WriteString("MATCH (a:Appearance)-[:IN]->(m:Match)")
	default:
		return GraphQuery{}, false
	}

	clauses := translateFilters(analysis, params)
	if analysis.Type == model.SubjectTeam {
		clauses = append([]string{"m.squad = $subjectSquad"}, clauses...)
		params["subjectSquad"] = analysis.Subject()
	}
	if len(clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}

	projection, ok := metricProjection(def.Key)
	if !ok {
		return GraphQuery{}, false
	}
	sb.WriteString(" ")
	sb.WriteString(projection)

	return GraphQuery{Metric: def.Key, Cypher: sb.String(), Params: params}, true
}

func metricProjection(key string) (string, bool) {
	switch key {
	case catalog.MetricGoals:
		return "RETURN coalesce(sum(a.goals), 0) AS value, count(a) AS appearances", true
	case catalog.MetricAssists:
		return "RETURN coalesce(sum(a.assists), 0) AS value, count(a) AS appearances", true
	case catalog.MetricAppearances:
		return "RETURN count(a) AS value", true
	case catalog.MetricGoalsPerGame:
		return "RETURN CASE WHEN count(a) = 0 THEN 0.0 ELSE toFloat(sum(a.goals)) / count(a) END AS value", true
	case catalog.MetricWinPercentage:
		return "RETURN CASE WHEN count(m) = 0 THEN 0.0 ELSE 100.0 * sum(CASE WHEN m.result = 'win' THEN 1 ELSE 0 END) / count(m) END AS value", true
	case catalog.MetricYellowCards:
		return "RETURN coalesce(sum(a.yellowCards), 0) AS value", true
	case catalog.MetricRedCards:
		return "RETURN coalesce(sum(a.redCards), 0) AS value", true
	case catalog.MetricGreenCards:
		return "RETURN coalesce(sum(a.greenCards), 0) AS value", true
	case catalog.MetricGoalsConceded:
		return "RETURN coalesce(sum(a.goalsConceded), 0) AS value", true
	case catalog.MetricCleanSheets:
		return "RETURN sum(CASE WHEN a.cleanSheet THEN 1 ELSE 0 END) AS value", true
	case catalog.MetricMOTM:
		return "RETURN sum(CASE WHEN a.motm THEN 1 ELSE 0 END) AS value", true
	}
	return "", false
}

// translateFilters maps each extracted filter category onto a predicate.
// Categories that cannot be translated contribute nothing.
func translateFilters(analysis model.QuestionAnalysis, params map[string]interface{}) []string {
	var clauses []string

	if tf, ok := analysis.FirstTimeFrame(); ok {
		clauses = append(clauses, translateTimeFrame(tf, params)...)
	}

	if analysis.Type == model.SubjectPlayer {
		if len(analysis.Extraction.TeamEntities) > 0 {
			clauses = append(clauses, "m.squad = $squad")
			params["squad"] = analysis.Extraction.TeamEntities[0]
		}
		if len(analysis.Extraction.TeamExclusions) > 0 {
			clauses = append(clauses, "m.squad <> $excludedSquad")
			params["excludedSquad"] = analysis.Extraction.TeamExclusions[0]
		}
	}

	if len(analysis.Extraction.Locations) > 0 {
		clauses = append(clauses, "m.homeAway = $location")
		params["location"] = analysis.Extraction.Locations[0]
	}
	if len(analysis.Extraction.Competitions) > 0 {
		clauses = append(clauses, "m.competition = $competition")
		params["competition"] = analysis.Extraction.Competitions[0]
	}
	if len(analysis.Extraction.Results) > 0 {
		clauses = append(clauses, "m.result = $result")
		params["result"] = analysis.Extraction.Results[0]
	}
	if len(analysis.Extraction.Positions) > 0 {
		clauses = append(clauses, "a.position = $position")
		params["position"] = analysis.Extraction.Positions[0]
	}

	return clauses
}

func translateTimeFrame(tf model.TimeFrame, params map[string]interface{}) []string {
	switch tf.Kind {
	case model.TimeFrameSeason:
		params["season"] = tf.Value
		return []string{"m.season = $season"}
	case model.TimeFrameBefore:
		if year := util.SeasonStartYear(tf.Value); year > 0 {
			params["beforeSeason"] = tf.Value
			return []string{"m.season < $beforeSeason"}
		}
		if year, err := strconv.Atoi(tf.Value); err == nil {
			params["beforeYear"] = year
			return []string{"m.startYear < $beforeYear"}
		}
	case model.TimeFrameSince:
		if year, err := strconv.Atoi(tf.Value); err == nil {
			params["sinceYear"] = year
			return []string{"m.startYear >= $sinceYear"}
		}
	case model.TimeFrameRange:
		from, errFrom := strconv.Atoi(tf.Start)
		to, errTo := strconv.Atoi(tf.End)
		if errFrom == nil && errTo == nil {
			params["fromYear"] = from
			params["toYear"] = to
			return []string{"m.startYear >= $fromYear", "m.startYear <= $toYear"}
		}
	case model.TimeFrameBetween:
		if from, to, ok := parseBetweenBounds(tf.Start, tf.End); ok {
			return betweenClauses(from, to, params)
		}
	}
	// Untranslatable time frames are dropped, widening the answer.
	log.Debug().Str("kind", tf.Kind).Str("value", tf.Value).Msg("Dropping untranslatable time frame")
	return nil
}

type bound struct {
	year int
	date string
}

func parseBetweenBounds(start, end string) (bound, bound, bool) {
	from, okFrom := parseBound(start)
	to, okTo := parseBound(end)
	if !okFrom || !okTo {
		return bound{}, bound{}, false
	}
	return from, to, true
}

func parseBound(s string) (bound, bool) {
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return bound{date: t.Format("2006-01-02")}, true
	}
	if year, err := strconv.Atoi(s); err == nil && year >= 1000 {
		return bound{year: year}, true
	}
	return bound{}, false
}

func betweenClauses(from, to bound, params map[string]interface{}) []string {
	if from.date != "" && to.date != "" {
		params["fromDate"] = from.date
		params["toDate"] = to.date
		return []string{"m.date >= $fromDate", "m.date <= $toDate"}
	}
	if from.year > 0 && to.year > 0 {
		params["fromYear"] = from.year
		params["toYear"] = to.year
		return []string{"m.startYear >= $fromYear", "m.startYear <= $toYear"}
	}
	// Mixed date/year bounds have no translation.
	return nil
}

// Describe renders a query for debug output, never for execution.
func (q GraphQuery) Describe() string {
	return fmt.Sprintf("[%s] %s", q.Metric, q.Cypher)
}
