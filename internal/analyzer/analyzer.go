package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"statchat-backend/internal/catalog"
	"statchat-backend/internal/model"
)

// SubjectSource exposes the known subject names. Loaded once at startup
// and immutable for the process lifetime.
type SubjectSource interface {
	PlayerNames() []string
}

// Analyzer parses a raw question plus an optional pre-selected subject
// into a structured intent. Analyze never fails: extraction problems
// degrade the subject type to unknown and leave the metric set empty.
type Analyzer struct {
	catalog  *catalog.Catalog
	subjects SubjectSource
}

func NewAnalyzer(cat *catalog.Catalog, subjects SubjectSource) *Analyzer {
	return &Analyzer{catalog: cat, subjects: subjects}
}

var (
	clubAggregateRe = regexp.MustCompile(`(?i)\b(?:the\s+club|all\s+players|whole\s+club|in\s+total|altogether)\b`)
	// Two or more capitalized words: a subject-like token. Also the only
	// shape ever echoed back, so malformed input cannot reach the answer.
	properNounRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)
)

func (a *Analyzer) Analyze(qc model.QuestionContext) model.QuestionAnalysis {
	analysis := model.QuestionAnalysis{Type: model.SubjectUnknown}

	analysis.Metrics = a.catalog.MatchText(qc.Question)
	analysis.Extraction = extractFilters(qc.Question)

	if tf, ok := extractTimeFrame(qc.Question); ok {
		analysis.Extraction.TimeFrames = []model.TimeFrame{tf}
		analysis.TimeRange = tf.Value
	} else if date := extractBareDate(qc.Question); date != "" {
		analysis.TimeRange = date
	}

	a.resolveSubject(qc, &analysis)

	log.Debug().Str("question", qc.Question).Str("type", analysis.Type).
		Strs("metrics", analysis.Metrics).Strs("entities", analysis.Entities).
		Msg("Question analyzed")
	return analysis
}

// resolveSubject applies the precedence order: pre-selected userContext
// first, then the longest known-name substring match, then club-wide
// aggregate phrasing, then a squad token as a team subject.
func (a *Analyzer) resolveSubject(qc model.QuestionContext, analysis *model.QuestionAnalysis) {
	if qc.UserContext != "" {
		if name, ok := a.lookupName(qc.UserContext); ok {
			analysis.Type = model.SubjectPlayer
			analysis.Entities = []string{name}
		} else {
			analysis.UnresolvedSubject = sanitizeName(qc.UserContext)
		}
		return
	}

	matches := a.matchNames(qc.Question)
	switch len(matches) {
	case 1:
		analysis.Type = model.SubjectPlayer
		analysis.Entities = []string{matches[0]}
		return
	case 0:
		// fall through to aggregate / team detection
	default:
		// More than one plausible subject is ambiguous; no query is issued.
		log.Debug().Strs("matches", matches).Msg("Ambiguous subject, degrading to unknown")
		return
	}

	if clubAggregateRe.MatchString(qc.Question) {
		analysis.Type = model.SubjectClub
		return
	}

	if len(analysis.Extraction.TeamEntities) > 0 {
		analysis.Type = model.SubjectTeam
		analysis.Entities = []string{analysis.Extraction.TeamEntities[0]}
		return
	}

	if candidate := properNounRe.FindString(qc.Question); candidate != "" {
		analysis.UnresolvedSubject = candidate
	}
}

// matchNames returns known names appearing in the question. Longest match
// wins for overlapping names ("Luke Bangs" shadows "Luke"); genuinely
// distinct matches are all returned so the caller can detect ambiguity.
func (a *Analyzer) matchNames(question string) []string {
	lowered := strings.ToLower(question)
	names := append([]string(nil), a.subjects.PlayerNames()...)
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	var matched []string
	for _, name := range names {
		if name == "" || !strings.Contains(lowered, strings.ToLower(name)) {
			continue
		}
		shadowed := false
		for _, m := range matched {
			if strings.Contains(strings.ToLower(m), strings.ToLower(name)) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			matched = append(matched, name)
		}
	}
	return matched
}

func (a *Analyzer) lookupName(name string) (string, bool) {
	for _, known := range a.subjects.PlayerNames() {
		if strings.EqualFold(known, strings.TrimSpace(name)) {
			return known, true
		}
	}
	return "", false
}

var safeNameRe = regexp.MustCompile(`^[A-Za-z .'-]+$`)

// sanitizeName keeps a name echoable: anything outside plain name
// characters is dropped entirely rather than escaped.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if safeNameRe.MatchString(name) {
		return name
	}
	return ""
}
