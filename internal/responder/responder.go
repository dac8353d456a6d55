package responder

import (
	"fmt"
	"strings"

	"statchat-backend/internal/catalog"
	"statchat-backend/internal/model"
	"statchat-backend/internal/util"
)

// Result carries the raw query value plus optional appearance context
// fetched alongside goals/assists reads.
type Result struct {
	Value       interface{}
	Appearances *int64
}

type renderInput struct {
	subject  string
	def      catalog.MetricDefinition
	value    float64
	raw      interface{}
	result   Result
	analysis model.QuestionAnalysis
}

// renderFunc is one metric-family renderer. Returning ok=false falls
// through to the shared zero-handling and default assembly.
type renderFunc func(r *Responder, in renderInput) (string, bool)

// Responder turns a query result plus the original intent into one
// deterministic sentence. Pure function of its inputs: two equivalent
// questions always produce byte-identical answers.
type Responder struct {
	zeroRules *catalog.ZeroRuleEngine
	catalog   *catalog.Catalog
	overrides map[catalog.Family]renderFunc
}

func NewResponder(cat *catalog.Catalog, zeroRules *catalog.ZeroRuleEngine) *Responder {
	return &Responder{
		catalog:   cat,
		zeroRules: zeroRules,
		overrides: map[catalog.Family]renderFunc{
			catalog.FamilyAffiliation: renderAffiliation,
			catalog.FamilyRatio:       renderRatio,
			catalog.FamilyPercentage:  renderPercentage,
			catalog.FamilyAppearance:  renderSquadAppearances,
		},
	}
}

// Build renders the sentence for one metric. The decision sequence is
// fixed: family override, then zero handling, then default assembly with
// contextual clauses in a fixed order.
func (r *Responder) Build(subject, metric string, result Result, analysis model.QuestionAnalysis) string {
	def, ok := r.catalog.Resolve(metric)
	if !ok {
		return fmt.Sprintf("I don't know how to answer that about %s.", subject)
	}

	in := renderInput{
		subject:  subject,
		def:      def,
		value:    toFloat(result.Value),
		raw:      result.Value,
		result:   result,
		analysis: analysis,
	}

	if render, ok := r.overrides[def.Family]; ok {
		if sentence, done := render(r, in); done {
			return sentence
		}
	}

	if catalog.IsZero(in.value) {
		return r.renderZero(in)
	}

	return r.renderDefault(in)
}

// --- family overrides ---

func renderAffiliation(_ *Responder, in renderInput) (string, bool) {
	team, _ := in.raw.(string)
	if team == "" {
		return fmt.Sprintf("I couldn't find which team %s plays for.", in.subject), true
	}
	return fmt.Sprintf("%s plays for the %s.", in.subject, util.DisplaySquad(team)), true
}

// Per-appearance ratios always render the numeric value; the generic
// zero substitution never fires for them.
func renderRatio(r *Responder, in renderInput) (string, bool) {
	sentence := fmt.Sprintf("%s has %s %s %s", in.subject, in.def.Verb,
		in.def.FormatValue(in.value), in.def.DisplayName(in.value))
	return r.appendClauses(sentence, in), true
}

func renderPercentage(r *Responder, in renderInput) (string, bool) {
	if catalog.IsZero(in.value) {
		return "", false
	}
	sentence := fmt.Sprintf("%s has a %s of %s", in.subject,
		in.def.DisplayName(in.value), in.def.FormatValue(in.value))
	return r.appendClauses(sentence, in), true
}

// Squad-scoped appearance questions get the squad named directly after
// the pluralized metric. Zero falls through to the shared zero path.
func renderSquadAppearances(r *Responder, in renderInput) (string, bool) {
	if catalog.IsZero(in.value) || len(in.analysis.Extraction.TeamEntities) == 0 {
		return "", false
	}
	return r.appendClauses(fmt.Sprintf("%s has made %s %s", in.subject,
		in.def.FormatValue(in.value), in.def.DisplayName(in.value)), in), true
}

// --- zero handling ---

// Season and ranged phrasings are attempted first, then the rule table,
// then the generic fallback. Zero sentences carry no further clauses.
func (r *Responder) renderZero(in renderInput) string {
	if tf, ok := in.analysis.FirstTimeFrame(); ok && in.def.ZeroAction != "" {
		switch tf.Kind {
		case model.TimeFrameSeason:
			return fmt.Sprintf("%s didn't %s in the %s season.", in.subject, in.def.ZeroAction, tf.Value)
		case model.TimeFrameBetween, model.TimeFrameRange:
			return fmt.Sprintf("%s didn't %s between %s and %s.", in.subject, in.def.ZeroAction, tf.Start, tf.End)
		}
	}

	if rule, ok := r.zeroRules.Match(in.def.Key); ok {
		return fmt.Sprintf("%s %s.", in.subject, rule.Phrase)
	}

	return fmt.Sprintf("%s has %s 0 %s.", in.subject, in.def.Verb, in.def.Plural)
}

// --- default assembly ---

func (r *Responder) renderDefault(in renderInput) string {
	name := elideDuplicateWord(in.def.DisplayName(in.value), in.def.Verb)
	sentence := fmt.Sprintf("%s has %s %s %s", in.subject, in.def.Verb,
		in.def.FormatValue(in.value), name)
	return r.appendClauses(sentence, in)
}

// elideDuplicateWord drops a metric-name word that repeats the verb, so
// "conceded 3 goals conceded" renders as "conceded 3 goals".
func elideDuplicateWord(name, verb string) string {
	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if strings.EqualFold(w, verb) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// appendClauses attaches contextual clauses in a fixed order: appearance
// context, team, team exclusion, location, competition, result, position,
// then a single date clause, then the terminal period.
func (r *Responder) appendClauses(sentence string, in renderInput) string {
	var sb strings.Builder
	sb.WriteString(sentence)

	if in.result.Appearances != nil && in.def.Key != catalog.MetricAppearances {
		sb.WriteString(fmt.Sprintf(" in %d %s", *in.result.Appearances,
			pluralizeAppearance(*in.result.Appearances)))
	}

	if in.analysis.Type == model.SubjectPlayer && len(in.analysis.Extraction.TeamEntities) > 0 {
		sb.WriteString(" for the ")
		sb.WriteString(util.DisplaySquad(in.analysis.Extraction.TeamEntities[0]))
	}
	if len(in.analysis.Extraction.TeamExclusions) > 0 {
		sb.WriteString(" when not playing for the ")
		sb.WriteString(util.DisplaySquad(in.analysis.Extraction.TeamExclusions[0]))
	}

	if len(in.analysis.Extraction.Locations) > 0 {
		if in.analysis.Extraction.Locations[0] == model.LocationHome {
			sb.WriteString(" at home")
		} else {
			sb.WriteString(" away from home")
		}
	}

	if len(in.analysis.Extraction.Competitions) > 0 {
		sb.WriteString(competitionClause(in.analysis.Extraction.Competitions[0]))
	}
	if len(in.analysis.Extraction.Results) > 0 {
		sb.WriteString(resultClause(in.analysis.Extraction.Results[0]))
	}
	if len(in.analysis.Extraction.Positions) > 0 {
		sb.WriteString(positionClause(in.analysis.Extraction.Positions[0]))
	}

	sb.WriteString(dateClause(in.analysis))
	sb.WriteString(".")
	return sb.String()
}

// dateClause renders at most one time constraint: the structured frame if
// present, otherwise a surviving free-form time range.
func dateClause(analysis model.QuestionAnalysis) string {
	if tf, ok := analysis.FirstTimeFrame(); ok {
		switch tf.Kind {
		case model.TimeFrameSeason:
			return fmt.Sprintf(" in the %s season", tf.Value)
		case model.TimeFrameBefore:
			return fmt.Sprintf(" before %s", tf.Value)
		case model.TimeFrameSince:
			return fmt.Sprintf(" since %s", tf.Value)
		case model.TimeFrameRange, model.TimeFrameBetween:
			return fmt.Sprintf(" between %s and %s", tf.Start, tf.End)
		}
		return ""
	}
	if analysis.TimeRange != "" {
		return fmt.Sprintf(" on %s", analysis.TimeRange)
	}
	return ""
}

func competitionClause(competition string) string {
	switch competition {
	case "league":
		return " in the league"
	case "cup":
		return " in cup games"
	case "friendly":
		return " in friendlies"
	}
	return ""
}

func resultClause(result string) string {
	switch result {
	case "win":
		return " in wins"
	case "draw":
		return " in draws"
	case "loss":
		return " in defeats"
	}
	return ""
}

func positionClause(position string) string {
	switch position {
	case "GK":
		return " as a goalkeeper"
	case "DEF":
		return " as a defender"
	case "MID":
		return " as a midfielder"
	case "FWD":
		return " as a forward"
	}
	return ""
}

func pluralizeAppearance(n int64) string {
	if n == 1 {
		return "appearance"
	}
	return "appearances"
}

func toFloat(v interface{}) float64 {
	switch value := v.(type) {
	case int64:
		return float64(value)
	case int:
		return float64(value)
	case float64:
		return value
	case float32:
		return float64(value)
	}
	return 0
}
